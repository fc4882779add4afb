package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/dashboard"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type DashboardServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewDashboardService(employeeRepo employee.EmployeeRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{employeeRepo: employeeRepo, now: time.Now}
}

// GetActiveStaff implements dashboard.DashboardService. Department counts
// always cover the whole roster; the department filter only narrows Staff.
func (s *DashboardServiceImpl) GetActiveStaff(ctx context.Context, req dashboard.ActiveStaffRequest) (dashboard.ActiveStaffResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.ActiveStaffResponse{}, err
	}

	date := utils.Date(s.now())
	if req.Date != "" {
		date = utils.MustParseDate(req.Date)
	}

	active, err := s.employeeRepo.ListActiveOn(ctx, date)
	if err != nil {
		return dashboard.ActiveStaffResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	counts := make(map[employee.Department]int, len(employee.Departments))
	staff := make([]employee.EmployeeResponse, 0, len(active))
	for _, e := range active {
		counts[e.Department]++
		if req.Department == "" || string(e.Department) == req.Department {
			staff = append(staff, employee.ToResponse(e))
		}
	}

	departments := make([]dashboard.DepartmentCount, 0, len(employee.Departments))
	for _, d := range employee.Departments {
		departments = append(departments, dashboard.DepartmentCount{Name: string(d), Count: counts[d]})
	}

	return dashboard.ActiveStaffResponse{
		Date:        utils.FormatDate(date),
		TotalActive: len(active),
		Departments: departments,
		Staff:       staff,
	}, nil
}
