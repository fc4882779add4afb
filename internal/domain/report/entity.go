package report

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
)

type Status string

const (
	StatusOnTime       Status = "On Time"
	StatusLate         Status = "Late"
	StatusLeftEarly    Status = "Left Early"
	StatusLateAndEarly Status = "Late & Early"
	StatusAbsent       Status = "Absent"
	StatusExtra        Status = "Extra"
	StatusHoliday      Status = "Holiday"
	StatusDayOff       Status = "Day Off"
)

type Flag string

const (
	FlagAuto   Flag = "Auto"
	FlagManual Flag = "Manual"
)

// NoShift is shown in place of shift times on days without an assignment.
const NoShift = "-"

// ReconcileInput is a read-only snapshot for one report. Start and End are
// civil dates with Start <= End. Employees are already filtered to the
// requested scope.
type ReconcileInput struct {
	Start     time.Time
	End       time.Time
	Employees []employee.Employee
	Shifts    []shift.Shift
	Logs      []attendance.LogEntry
	Calendar  []calendar.DayType
}

// DailyBreakdown is one employee on one day.
type DailyBreakdown struct {
	Date        time.Time
	DayType     string
	EmployeeID  string
	PersonID    string
	Name        string
	Department  string
	ShiftStart  string
	ShiftEnd    string
	ActualRange string
	Status      Status
	Flag        Flag
}

// EmployeeSummary accumulates one employee's counters across the range.
type EmployeeSummary struct {
	EmployeeID       string
	PersonID         string
	Name             string
	Department       string
	TotalDays        int
	Present          int
	Absent           int
	OnTime           int
	Late             int
	LeftEarly        int
	LateAndLeftEarly int
	ManualEditCount  int
}

// ShiftAnomaly records a day where more than one shift applied to an
// employee. The first listed shift was used.
type ShiftAnomaly struct {
	EmployeeID string
	PersonID   string
	Date       time.Time
	ShiftIDs   []string
}

type ReconcileResult struct {
	Breakdown []DailyBreakdown
	Summary   []EmployeeSummary
	Anomalies []ShiftAnomaly
}
