package employee

import (
	"strings"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type EmployeeFilter struct {
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
	// ExactName matches Name as a whole instead of a case-insensitive substring.
	ExactName bool `json:"-"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Department != "" && !Department(f.Department).IsValid() {
		errs.Add("department", "department must be one of Security, Gardener, Housekeeper, Dishwasher")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	EffectiveDate   *string `json:"effective_date"`
	ResignationDate *string `json:"resignation_date"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		PersonID:        e.PersonID,
		Name:            e.Name,
		Department:      string(e.Department),
		EffectiveDate:   utils.FormatDatePtr(e.EffectiveDate),
		ResignationDate: utils.FormatDatePtr(e.ResignationDate),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateEmployeeRequest struct {
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	EffectiveDate   *string `json:"effective_date,omitempty"`
	ResignationDate *string `json:"resignation_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployeeFields(&errs, r.PersonID, r.Name, r.Department, r.EffectiveDate, r.ResignationDate)
	return errs.Err()
}

// ToEmployee assumes Validate has passed.
func (r *CreateEmployeeRequest) ToEmployee() Employee {
	return Employee{
		PersonID:        strings.TrimSpace(r.PersonID),
		Name:            strings.TrimSpace(r.Name),
		Department:      Department(r.Department),
		EffectiveDate:   parseOptionalDate(r.EffectiveDate),
		ResignationDate: parseOptionalDate(r.ResignationDate),
	}
}

type UpdateEmployeeRequest struct {
	ID              string  `json:"-"`
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	EffectiveDate   *string `json:"effective_date,omitempty"`
	ResignationDate *string `json:"resignation_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validateEmployeeFields(&errs, r.PersonID, r.Name, r.Department, r.EffectiveDate, r.ResignationDate)

	return errs.Err()
}

// ToEmployee assumes Validate has passed.
func (r *UpdateEmployeeRequest) ToEmployee() Employee {
	return Employee{
		ID:              r.ID,
		PersonID:        strings.TrimSpace(r.PersonID),
		Name:            strings.TrimSpace(r.Name),
		Department:      Department(r.Department),
		EffectiveDate:   parseOptionalDate(r.EffectiveDate),
		ResignationDate: parseOptionalDate(r.ResignationDate),
	}
}

func validateEmployeeFields(errs *validator.ValidationErrors, personID, name, department string, effective, resignation *string) {
	if validator.IsEmpty(personID) {
		errs.Add("person_id", "person_id is required")
	} else if len(personID) > 50 {
		errs.Add("person_id", "person_id must not exceed 50 characters")
	}

	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if len(name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if validator.IsEmpty(department) {
		errs.Add("department", "department is required")
	} else if !Department(department).IsValid() {
		errs.Add("department", "department must be one of Security, Gardener, Housekeeper, Dishwasher")
	}

	var effectiveDate, resignationDate time.Time
	var hasEffective, hasResignation bool
	if effective != nil && *effective != "" {
		if effectiveDate, hasEffective = validator.IsValidDate(*effective); !hasEffective {
			errs.Add("effective_date", "effective_date must be in YYYY-MM-DD format")
		}
	}
	if resignation != nil && *resignation != "" {
		if resignationDate, hasResignation = validator.IsValidDate(*resignation); !hasResignation {
			errs.Add("resignation_date", "resignation_date must be in YYYY-MM-DD format")
		}
	}
	if hasEffective && hasResignation && resignationDate.Before(effectiveDate) {
		errs.Add("resignation_date", ErrResignationBeforeHire.Error())
	}
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := utils.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
