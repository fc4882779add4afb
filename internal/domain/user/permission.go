package user

type Permission string

const (
	// Roster
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Attendance logs and corrections
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Day-type calendar
	PermissionCalendarView   Permission = "calendar.view"
	PermissionCalendarManage Permission = "calendar.manage"

	// Reports, dashboard, visitors
	PermissionReportsView Permission = "reports.view"
	PermissionVisitorView Permission = "visitor.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

var viewPermissions = []Permission{
	PermissionEmployeeView,
	PermissionShiftView,
	PermissionAttendanceView,
	PermissionCalendarView,
	PermissionReportsView,
	PermissionVisitorView,
}

var managePermissions = []Permission{
	PermissionEmployeeManage,
	PermissionShiftManage,
	PermissionAttendanceManage,
	PermissionCalendarManage,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleUser:        viewPermissions,
	RoleAdmin:       concat(viewPermissions, managePermissions),
	RoleMasterAdmin: concat(viewPermissions, managePermissions, []Permission{PermissionUserManage}),
}

func concat(groups ...[]Permission) []Permission {
	var out []Permission
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
