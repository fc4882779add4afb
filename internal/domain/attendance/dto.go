package attendance

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

// MaxLogRangeDays caps a single log query.
const MaxLogRangeDays = 366

const timestampLayout = "2006-01-02T15:04:05"

type EntryMode string

const (
	EntryModeAdd  EntryMode = "add"
	EntryModeEdit EntryMode = "edit"
)

type LogEntryResponse struct {
	ID        string  `json:"id"`
	PersonID  string  `json:"person_no"`
	Date      string  `json:"date"`
	CheckIn   *string `json:"check_in"`
	CheckOut  *string `json:"check_out"`
	Source    string  `json:"source"`
	Reason    *string `json:"reason,omitempty"`
	UpdatedBy *string `json:"updated_by,omitempty"`
}

func ToResponse(l LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:        l.ID,
		PersonID:  l.PersonID,
		Date:      utils.FormatDate(l.Date),
		CheckIn:   formatTimestamp(l.CheckIn),
		CheckOut:  formatTimestamp(l.CheckOut),
		Source:    string(l.Source),
		Reason:    l.Reason,
		UpdatedBy: l.UpdatedBy,
	}
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timestampLayout)
	return &s
}

type FetchLogsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (r *FetchLogsRequest) Validate() error {
	start, end, errs := validator.ValidateDateRange(r.StartDate, r.EndDate, MaxLogRangeDays)
	r.start, r.end = start, end
	return errs.Err()
}

// Range returns the parsed dates, valid after Validate.
func (r *FetchLogsRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

type FindLogRequest struct {
	PersonID string `json:"person_id"`
	Date     string `json:"date"`
}

func (r *FindLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PersonID) {
		errs.Add("person_id", "person_id is required")
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

type ManualEntryRequest struct {
	Mode     string `json:"mode"`
	PersonID string `json:"person_no"`
	Date     string `json:"date"`
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out"`
	Reason   string `json:"reason"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Mode != string(EntryModeAdd) && r.Mode != string(EntryModeEdit) {
		errs.Add("mode", ErrInvalidEntryMode.Error())
	}

	if validator.IsEmpty(r.PersonID) {
		errs.Add("person_no", "person_no is required")
	}

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.ClockIn) {
		errs.Add("clock_in", "clock_in is required")
	} else if !validator.IsValidTime(r.ClockIn) {
		errs.Add("clock_in", "clock_in must be in HH:mm format")
	}

	if validator.IsEmpty(r.ClockOut) {
		errs.Add("clock_out", "clock_out is required")
	} else if !validator.IsValidTime(r.ClockOut) {
		errs.Add("clock_out", "clock_out must be in HH:mm format")
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.Err()
}

// ToManualEdit places both clocks on the entry date. Assumes Validate has passed.
func (r *ManualEntryRequest) ToManualEdit(updatedBy string, now time.Time) ManualEdit {
	date := utils.MustParseDate(r.Date)
	return ManualEdit{
		PersonID:             r.PersonID,
		Date:                 date,
		ManualEntryTimestamp: utils.MustParseTimeOfDay(r.ClockIn).On(date),
		ManualExitTimestamp:  utils.MustParseTimeOfDay(r.ClockOut).On(date),
		EditReason:           r.Reason,
		UpdatedBy:            updatedBy,
		UpdatedAt:            now,
	}
}
