package report

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

// MaxReportRangeDays caps a single report.
const MaxReportRangeDays = 366

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceReportRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`

	start time.Time
	end   time.Time
}

// Validate parses the range. When both dates are empty the previous
// Monday-Sunday week relative to now is used.
func (r *AttendanceReportRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if r.StartDate == "" && r.EndDate == "" {
		r.start, r.end = utils.PreviousWeek(now)
		r.StartDate, r.EndDate = utils.FormatDate(r.start), utils.FormatDate(r.end)
	} else {
		r.start, r.end, errs = validator.ValidateDateRange(r.StartDate, r.EndDate, MaxReportRangeDays)
	}

	if r.Department != "" && !employee.Department(r.Department).IsValid() {
		errs.Add("department", "department must be one of Security, Gardener, Housekeeper, Dishwasher")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

// Range returns the parsed dates, valid after Validate.
func (r *AttendanceReportRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

type AttendanceReport struct {
	StartDate   string                    `json:"start_date"`
	EndDate     string                    `json:"end_date"`
	GeneratedAt string                    `json:"generated_at"`
	Summary     []EmployeeSummaryResponse `json:"summary"`
	Breakdown   []DailyBreakdownResponse  `json:"breakdown"`
}

type EmployeeSummaryResponse struct {
	PersonID         string `json:"person_id"`
	Name             string `json:"name"`
	Department       string `json:"department"`
	TotalDays        int    `json:"total_days"`
	Present          int    `json:"present"`
	Absent           int    `json:"absent"`
	OnTime           int    `json:"on_time"`
	Late             int    `json:"late"`
	LeftEarly        int    `json:"leave_early"`
	LateAndLeftEarly int    `json:"both"`
	ManualEditCount  int    `json:"manual_edit_count"`
}

type DailyBreakdownResponse struct {
	Date        string `json:"date"`
	DayType     string `json:"day_type"`
	PersonID    string `json:"person_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	ShiftIn     string `json:"shift_in"`
	ShiftOut    string `json:"shift_out"`
	ActualRange string `json:"actual_range"`
	Status      string `json:"status"`
	Flag        string `json:"flag"`
}

func ToSummaryResponse(s EmployeeSummary) EmployeeSummaryResponse {
	return EmployeeSummaryResponse{
		PersonID:         s.PersonID,
		Name:             s.Name,
		Department:       s.Department,
		TotalDays:        s.TotalDays,
		Present:          s.Present,
		Absent:           s.Absent,
		OnTime:           s.OnTime,
		Late:             s.Late,
		LeftEarly:        s.LeftEarly,
		LateAndLeftEarly: s.LateAndLeftEarly,
		ManualEditCount:  s.ManualEditCount,
	}
}

func ToBreakdownResponse(b DailyBreakdown) DailyBreakdownResponse {
	return DailyBreakdownResponse{
		Date:        utils.FormatDate(b.Date),
		DayType:     b.DayType,
		PersonID:    b.PersonID,
		Name:        b.Name,
		Department:  b.Department,
		ShiftIn:     b.ShiftStart,
		ShiftOut:    b.ShiftEnd,
		ActualRange: b.ActualRange,
		Status:      string(b.Status),
		Flag:        string(b.Flag),
	}
}

// ExportedFile is a rendered report ready to stream or store.
type ExportedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ArchivePrefix is the storage folder for weekly workbooks.
const ArchivePrefix = "reports/"

type ArchivedReportResponse struct {
	Name string `json:"name"`
}
