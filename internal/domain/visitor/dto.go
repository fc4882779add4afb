package visitor

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type ListMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *ListMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs.Add("year", "year must be a valid year")
	}

	return errs.Err()
}

// Range returns the first and last day of the requested month.
func (r *ListMonthRequest) Range() (time.Time, time.Time) {
	start := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

type VisitorResponse struct {
	ID             string  `json:"id"`
	VisitorName    string  `json:"visitor_name"`
	Host           *string `json:"host"`
	VisitPurpose   *string `json:"visit_purpose"`
	DateEntry      string  `json:"date_entry"`
	FirstEntryTime *string `json:"first_entry_time"`
}

func ToResponse(v Visitor) VisitorResponse {
	var entry *string
	if v.FirstEntryTime != nil {
		s := utils.ClockString(*v.FirstEntryTime)
		entry = &s
	}
	return VisitorResponse{
		ID:             v.ID,
		VisitorName:    v.VisitorName,
		Host:           v.Host,
		VisitPurpose:   v.VisitPurpose,
		DateEntry:      utils.FormatDate(v.DateEntry),
		FirstEntryTime: entry,
	}
}
