package calendar

import (
	"strconv"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

// MaxCalendarRangeDays caps a single calendar query.
const MaxCalendarRangeDays = 366

type DayTypeResponse struct {
	Date    string `json:"date"`
	DayType string `json:"day_type"`
}

func ToResponse(d DayType) DayTypeResponse {
	return DayTypeResponse{Date: utils.FormatDate(d.Date), DayType: d.DayType}
}

type ListDayTypesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (r *ListDayTypesRequest) Validate() error {
	start, end, errs := validator.ValidateDateRange(r.StartDate, r.EndDate, MaxCalendarRangeDays)
	r.start, r.end = start, end
	return errs.Err()
}

// Range returns the parsed dates, valid after Validate.
func (r *ListDayTypesRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

type UpsertDayTypesRequest struct {
	Days []DayTypeResponse `json:"days"`
}

func (r *UpsertDayTypesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Days) == 0 {
		errs.Add("days", "at least one day is required")
	}
	for i, d := range r.Days {
		field := "days[" + strconv.Itoa(i) + "]"
		if _, ok := validator.IsValidDate(d.Date); !ok {
			errs.Add(field+".date", "date must be in YYYY-MM-DD format")
		}
		if validator.IsEmpty(d.DayType) {
			errs.Add(field+".day_type", "day_type is required")
		}
	}

	return errs.Err()
}

// ToDayTypes assumes Validate has passed.
func (r *UpsertDayTypesRequest) ToDayTypes() []DayType {
	out := make([]DayType, 0, len(r.Days))
	for _, d := range r.Days {
		out = append(out, DayType{Date: utils.MustParseDate(d.Date), DayType: d.DayType})
	}
	return out
}
