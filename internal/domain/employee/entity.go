package employee

import "time"

type Employee struct {
	ID              string
	PersonID        string
	Name            string
	Department      Department
	EffectiveDate   *time.Time
	ResignationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Department string

const (
	DepartmentSecurity    Department = "Security"
	DepartmentGardener    Department = "Gardener"
	DepartmentHousekeeper Department = "Housekeeper"
	DepartmentDishwasher  Department = "Dishwasher"
)

// Departments lists every department in display order.
var Departments = []Department{
	DepartmentSecurity,
	DepartmentGardener,
	DepartmentHousekeeper,
	DepartmentDishwasher,
}

func (d Department) IsValid() bool {
	for _, dept := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// IsOnboarded reports whether the employee has an effective date. Employees
// without one are excluded from attendance calculations.
func (e *Employee) IsOnboarded() bool {
	return e.EffectiveDate != nil
}
