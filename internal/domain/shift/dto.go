package shift

import (
	"math"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type ShiftFilter struct {
	Department string
	ActiveOnly bool
	// ActiveOn is the reference date for ActiveOnly; the service fills in today.
	ActiveOn time.Time
}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Department != "" && !employee.Department(f.Department).IsValid() {
		errs.Add("department", "department must be one of Security, Gardener, Housekeeper, Dishwasher")
	}

	return errs.Err()
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	PersonID      string  `json:"person_id,omitempty"`
	Name          string  `json:"name,omitempty"`
	Department    string  `json:"department,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	ActiveDate    string  `json:"active_date"`
	ExpiryDate    *string `json:"expiry_date"`
	DurationHours float64 `json:"duration_hours"`
	Overnight     bool    `json:"overnight"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		PersonID:      s.PersonID,
		Name:          s.EmployeeName,
		Department:    s.Department,
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		ActiveDate:    utils.FormatDate(s.ActiveDate),
		ExpiryDate:    utils.FormatDatePtr(s.ExpiryDate),
		DurationHours: math.Round(float64(s.DurationMinutes())/60*10) / 10,
		Overnight:     s.CrossesMidnight(),
	}
}

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	ActiveDate string  `json:"active_date"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	validateShiftFields(&errs, r.EmployeeID, r.StartTime, r.EndTime, r.ActiveDate, r.ExpiryDate)
	return errs.Err()
}

// ToShift assumes Validate has passed.
func (r *CreateShiftRequest) ToShift() Shift {
	return buildShift("", r.EmployeeID, r.StartTime, r.EndTime, r.ActiveDate, r.ExpiryDate)
}

type UpdateShiftRequest struct {
	ID         string  `json:"-"`
	EmployeeID string  `json:"employee_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	ActiveDate string  `json:"active_date"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validateShiftFields(&errs, r.EmployeeID, r.StartTime, r.EndTime, r.ActiveDate, r.ExpiryDate)

	return errs.Err()
}

// ToShift assumes Validate has passed.
func (r *UpdateShiftRequest) ToShift() Shift {
	return buildShift(r.ID, r.EmployeeID, r.StartTime, r.EndTime, r.ActiveDate, r.ExpiryDate)
}

func validateShiftFields(errs *validator.ValidationErrors, employeeID, start, end, active string, expiry *string) {
	if validator.IsEmpty(employeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if validator.IsEmpty(start) {
		errs.Add("start_time", "start_time is required")
	} else if !validator.IsValidTime(start) {
		errs.Add("start_time", "start_time must be in HH:mm format (e.g., 19:00)")
	}

	if validator.IsEmpty(end) {
		errs.Add("end_time", "end_time is required")
	} else if !validator.IsValidTime(end) {
		errs.Add("end_time", "end_time must be in HH:mm format (e.g., 07:00)")
	}

	activeDate, activeOK := validator.IsValidDate(active)
	if validator.IsEmpty(active) {
		errs.Add("active_date", "active_date is required")
	} else if !activeOK {
		errs.Add("active_date", "active_date must be in YYYY-MM-DD format")
	}

	if expiry != nil && *expiry != "" {
		expiryDate, ok := validator.IsValidDate(*expiry)
		if !ok {
			errs.Add("expiry_date", "expiry_date must be in YYYY-MM-DD format")
		} else if activeOK && expiryDate.Before(activeDate) {
			errs.Add("expiry_date", ErrExpiryBeforeActiveDate.Error())
		}
	}
}

func buildShift(id, employeeID, start, end, active string, expiry *string) Shift {
	s := Shift{
		ID:         id,
		EmployeeID: employeeID,
		StartTime:  utils.MustParseTimeOfDay(start),
		EndTime:    utils.MustParseTimeOfDay(end),
		ActiveDate: utils.MustParseDate(active),
	}
	if expiry != nil && *expiry != "" {
		d := utils.MustParseDate(*expiry)
		s.ExpiryDate = &d
	}
	return s
}
