package report

import (
	"sort"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

const (
	// A shift starting after noon treats clock-ins before 08:00 as next-day punches.
	lateShiftStartMinutes = 12 * 60
	earlyClockInMinutes   = 8 * 60
)

// Reconcile classifies every employee on every day of [in.Start, in.End].
//
// For each day the employee's applicable shift is resolved, the effective log
// entry (manual before device) is matched, and the day becomes one of On Time,
// Late, Left Early, Late & Early, Absent, Extra, Holiday or Day Off. Overnight
// shifts take the clock-in from the day's checkout (falling back to its
// check-in) and the clock-out from the next day's check-in.
//
// Reconcile does no I/O and keeps no state.
func Reconcile(in report.ReconcileInput) report.ReconcileResult {
	start, end := utils.Date(in.Start), utils.Date(in.End)
	days := utils.DaysInRange(start, end)

	dayTypes := indexDayTypes(in.Calendar)
	logs := attendance.NewLogIndex(in.Logs)
	shifts := groupShifts(in.Shifts)

	result := report.ReconcileResult{
		Breakdown: make([]report.DailyBreakdown, 0, days*len(in.Employees)),
		Summary:   make([]report.EmployeeSummary, 0, len(in.Employees)),
	}

	for _, emp := range in.Employees {
		summary := report.EmployeeSummary{
			EmployeeID: emp.ID,
			PersonID:   emp.PersonID,
			Name:       emp.Name,
			Department: string(emp.Department),
		}

		for d := start; !d.After(end); d = utils.NextDay(d) {
			summary.TotalDays++

			applicable := applicableShifts(shifts[emp.ID], d)
			var sh *shift.Shift
			if len(applicable) > 0 {
				sh = &applicable[0]
			}
			if len(applicable) > 1 {
				result.Anomalies = append(result.Anomalies, newAnomaly(emp, d, applicable))
			}

			row := reconcileDay(emp, d, dayTypeOn(dayTypes, d), sh, logs, &summary)
			result.Breakdown = append(result.Breakdown, row)
		}

		result.Summary = append(result.Summary, summary)
	}

	sort.SliceStable(result.Breakdown, func(i, j int) bool {
		return result.Breakdown[i].Date.Before(result.Breakdown[j].Date)
	})

	return result
}

func reconcileDay(emp employee.Employee, d time.Time, dayType string, sh *shift.Shift, logs attendance.LogIndex, summary *report.EmployeeSummary) report.DailyBreakdown {
	row := report.DailyBreakdown{
		Date:        d,
		DayType:     dayType,
		EmployeeID:  emp.ID,
		PersonID:    emp.PersonID,
		Name:        emp.Name,
		Department:  string(emp.Department),
		ShiftStart:  report.NoShift,
		ShiftEnd:    report.NoShift,
		ActualRange: "-",
		Status:      report.StatusDayOff,
		Flag:        report.FlagAuto,
	}
	if calendar.IsHoliday(dayType) {
		row.Status = report.StatusHoliday
	}

	log, hasLog := logs.Lookup(emp.PersonID, d)

	if sh == nil {
		if hasLog {
			row.Status = report.StatusExtra
			row.ActualRange = formatRange(log.CheckIn, log.CheckOut, false)
			if log.IsManual() {
				row.Flag = report.FlagManual
			}
			summary.Present++
		}
		return row
	}

	row.ShiftStart, row.ShiftEnd = sh.StartTime.String(), sh.EndTime.String()
	overnight := sh.IsOvernight()

	var actualIn, actualOut *time.Time
	var nextLog attendance.LogEntry
	var hasNext bool
	if overnight {
		nextLog, hasNext = logs.Lookup(emp.PersonID, utils.NextDay(d))
		if hasLog {
			actualIn = firstSet(log.CheckOut, log.CheckIn)
		}
		if hasNext {
			actualOut = nextLog.CheckIn
		}
	} else if hasLog {
		actualIn, actualOut = log.CheckIn, log.CheckOut
	}

	if (hasLog && log.IsManual()) || (hasNext && nextLog.IsManual()) {
		row.Flag = report.FlagManual
	}

	if actualIn == nil {
		row.Status = report.StatusAbsent
		summary.Absent++
		return row
	}

	summary.Present++
	if row.Flag == report.FlagManual {
		summary.ManualEditCount++
	}
	row.ActualRange = formatRange(actualIn, actualOut, overnight)

	late, early := classify(sh, utils.TimeOfDayOf(*actualIn), actualOut)
	switch {
	case late && early:
		row.Status = report.StatusLateAndEarly
		summary.LateAndLeftEarly++
	case late:
		row.Status = report.StatusLate
		summary.Late++
	case early:
		row.Status = report.StatusLeftEarly
		summary.LeftEarly++
	default:
		row.Status = report.StatusOnTime
		summary.OnTime++
	}

	return row
}

// classify compares a clock-in/out pair against the shift. Lateness uses the
// midnight-wrapped clock-in; the worked span is measured on the clock face.
func classify(sh *shift.Shift, in utils.TimeOfDay, out *time.Time) (late bool, early bool) {
	startMinutes := sh.StartTime.Minutes()
	inMinutes := in.Minutes()
	if startMinutes > lateShiftStartMinutes && inMinutes < earlyClockInMinutes {
		inMinutes += utils.MinutesPerDay
	}
	late = inMinutes > startMinutes

	if out != nil {
		worked := in.MinutesUntil(utils.TimeOfDayOf(*out))
		early = worked < sh.DurationMinutes()
	}
	return late, early
}

func formatRange(in, out *time.Time, overnight bool) string {
	s := clockOrUnknown(in) + " - " + clockOrUnknown(out)
	if overnight {
		s += " (+1)"
	}
	return s
}

func clockOrUnknown(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return utils.ClockString(*t)
}

func firstSet(candidates ...*time.Time) *time.Time {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func indexDayTypes(days []calendar.DayType) map[string]string {
	idx := make(map[string]string, len(days))
	for _, d := range days {
		key := utils.FormatDate(d.Date)
		if _, ok := idx[key]; !ok {
			idx[key] = d.DayType
		}
	}
	return idx
}

func dayTypeOn(idx map[string]string, d time.Time) string {
	if t, ok := idx[utils.FormatDate(d)]; ok {
		return t
	}
	return calendar.DayTypeWorkday
}

func groupShifts(shifts []shift.Shift) map[string][]shift.Shift {
	byEmployee := make(map[string][]shift.Shift)
	for _, s := range shifts {
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}
	return byEmployee
}

// applicableShifts keeps input order so the first match is deterministic.
func applicableShifts(shifts []shift.Shift, d time.Time) []shift.Shift {
	var out []shift.Shift
	for _, s := range shifts {
		if s.AppliesOn(d) {
			out = append(out, s)
		}
	}
	return out
}

func newAnomaly(emp employee.Employee, d time.Time, shifts []shift.Shift) report.ShiftAnomaly {
	ids := make([]string, 0, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ID)
	}
	return report.ShiftAnomaly{
		EmployeeID: emp.ID,
		PersonID:   emp.PersonID,
		Date:       d,
		ShiftIDs:   ids,
	}
}
