package dashboard

import (
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type ActiveStaffRequest struct {
	// Date defaults to today when empty
	Date       string `json:"date"`
	Department string `json:"department"`
}

func (r *ActiveStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	if r.Department != "" && !employee.Department(r.Department).IsValid() {
		errs.Add("department", "department must be one of Security, Gardener, Housekeeper, Dishwasher")
	}

	return errs.Err()
}

type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ActiveStaffResponse struct {
	Date        string                      `json:"date"`
	TotalActive int                         `json:"total_active"`
	Departments []DepartmentCount           `json:"departments"`
	Staff       []employee.EmployeeResponse `json:"staff"`
}
