package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/storage"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees  []employee.Employee
	lastFilter employee.EmployeeFilter
	calls      int
	err        error
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	f.calls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if filter.Department != "" && string(e.Department) != filter.Department {
			continue
		}
		if filter.Name != "" {
			if filter.ExactName && e.Name != filter.Name {
				continue
			}
			if !filter.ExactName && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Name)) {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	shifts []shift.Shift
}

func (f *fakeShiftRepo) ListForRange(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	return f.shifts, nil
}

type fakeLogRepo struct {
	attendance.LogRepository
	logs     []attendance.LogEntry
	lastFrom time.Time
	lastTo   time.Time
	// afterRead runs once the snapshot is taken, standing in for a
	// concurrent write.
	afterRead func()
}

func (f *fakeLogRepo) FetchLogs(ctx context.Context, start, end time.Time) ([]attendance.LogEntry, error) {
	f.lastFrom, f.lastTo = start, end
	snapshot := append([]attendance.LogEntry(nil), f.logs...)
	if f.afterRead != nil {
		hook := f.afterRead
		f.afterRead = nil
		hook()
	}
	return snapshot, nil
}

type fakeCalendarRepo struct {
	calendar.CalendarRepository
	days []calendar.DayType
}

func (f *fakeCalendarRepo) List(ctx context.Context, start, end time.Time) ([]calendar.DayType, error) {
	return f.days, nil
}

type reportFixture struct {
	service   *ReportServiceImpl
	employees *fakeEmployeeRepo
	logs      *fakeLogRepo
	cache     cache.ReportCache
}

func newReportFixture(t *testing.T, reportCache cache.ReportCache) reportFixture {
	t.Helper()

	notOnboarded := testEmployee("e2", "P002", "Dan")
	notOnboarded.EffectiveDate = nil
	gardener := testEmployee("e3", "P003", "Gina")
	gardener.Department = employee.DepartmentGardener

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		testEmployee("e1", "P001", "Alice"),
		notOnboarded,
		gardener,
	}}
	logs := &fakeLogRepo{logs: []attendance.LogEntry{
		deviceLog("P001", "2025-01-06", "07:55", "17:05"),
		deviceLog("P003", "2025-01-07", "09:00", "18:00"),
	}}
	shifts := &fakeShiftRepo{shifts: []shift.Shift{
		testShift("s1", "e1", "08:00", "17:00", "2025-01-01", ""),
		testShift("s3", "e3", "08:00", "17:00", "2025-01-01", ""),
	}}
	days := &fakeCalendarRepo{days: []calendar.DayType{
		{Date: utils.MustParseDate("2025-01-11"), DayType: calendar.DayTypeWeekend},
		{Date: utils.MustParseDate("2025-01-12"), DayType: calendar.DayTypeWeekend},
	}}

	fileStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewReportService(employees, shifts, logs, days, fileStorage, reportCache, metrics.New()).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }

	return reportFixture{service: svc, employees: employees, logs: logs, cache: reportCache}
}

func TestReportService_GenerateAttendanceReport(t *testing.T) {
	f := newReportFixture(t, cache.NewNoopReportCache())

	got, err := f.service.GenerateAttendanceReport(context.Background(), report.AttendanceReportRequest{
		StartDate: "2025-01-06",
		EndDate:   "2025-01-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", got.StartDate)
	assert.Equal(t, "2025-01-12", got.EndDate)
	assert.Equal(t, "2025-01-13", utils.FormatDate(f.logs.lastTo), "logs include the day after the range")

	require.Len(t, got.Summary, 2, "employees without an effective date are dropped")
	assert.Equal(t, "P001", got.Summary[0].PersonID)
	assert.Equal(t, 1, got.Summary[0].OnTime)
	assert.Equal(t, 6, got.Summary[0].Absent)
	assert.Equal(t, "P003", got.Summary[1].PersonID)
	assert.Equal(t, 1, got.Summary[1].Late)

	assert.Len(t, got.Breakdown, 14)
	assert.Equal(t, "2025-01-06", got.Breakdown[0].Date)
	assert.Equal(t, calendar.DayTypeWeekend, got.Breakdown[13].DayType)
}

func TestReportService_DefaultsToPreviousWeek(t *testing.T) {
	f := newReportFixture(t, cache.NewNoopReportCache())

	got, err := f.service.GenerateAttendanceReport(context.Background(), report.AttendanceReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", got.StartDate)
	assert.Equal(t, "2025-01-12", got.EndDate)
}

func TestReportService_Filters(t *testing.T) {
	tests := []struct {
		name       string
		department string
		filterName string
		wantFilter employee.EmployeeFilter
		wantNames  []string
	}{
		{
			name:       "department and full name",
			department: "Gardener",
			filterName: " Gina ",
			wantFilter: employee.EmployeeFilter{Department: "Gardener", Name: "Gina", ExactName: true},
			wantNames:  []string{"Gina"},
		},
		{
			name:       "partial name matches nobody",
			filterName: "Gin",
			wantFilter: employee.EmployeeFilter{Name: "Gin", ExactName: true},
			wantNames:  []string{},
		},
		{
			name:       "name is case sensitive",
			filterName: "alice",
			wantFilter: employee.EmployeeFilter{Name: "alice", ExactName: true},
			wantNames:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture(t, cache.NewNoopReportCache())

			got, err := f.service.GenerateAttendanceReport(context.Background(), report.AttendanceReportRequest{
				StartDate:  "2025-01-06",
				EndDate:    "2025-01-06",
				Department: tt.department,
				Name:       tt.filterName,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFilter, f.employees.lastFilter)
			names := []string{}
			for _, s := range got.Summary {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestReportService_Errors(t *testing.T) {
	t.Run("invalid range", func(t *testing.T) {
		f := newReportFixture(t, cache.NewNoopReportCache())
		_, err := f.service.GenerateAttendanceReport(context.Background(), report.AttendanceReportRequest{
			StartDate: "2025-01-12",
			EndDate:   "2025-01-06",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "end_date")
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newReportFixture(t, cache.NewNoopReportCache())
		f.employees.err = errors.New("connection reset")
		_, err := f.service.GenerateAttendanceReport(context.Background(), report.AttendanceReportRequest{
			StartDate: "2025-01-06",
			EndDate:   "2025-01-12",
		})
		assert.ErrorIs(t, err, report.ErrReportGenerationFailed)
	})
}

func TestReportService_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := newReportFixture(t, cache.NewRedisReportCache(client, time.Minute))
	ctx := context.Background()
	req := report.AttendanceReportRequest{StartDate: "2025-01-06", EndDate: "2025-01-12"}

	first, err := f.service.GenerateAttendanceReport(ctx, req)
	require.NoError(t, err)
	second, err := f.service.GenerateAttendanceReport(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.employees.calls, "second call is served from cache")

	require.NoError(t, f.cache.Invalidate(ctx))
	_, err = f.service.GenerateAttendanceReport(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.employees.calls)
}

func TestReportService_CacheWriteDuringGeneration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := newReportFixture(t, cache.NewRedisReportCache(client, time.Minute))
	ctx := context.Background()
	req := report.AttendanceReportRequest{StartDate: "2025-01-06", EndDate: "2025-01-12"}

	f.logs.afterRead = func() {
		f.logs.logs = append(f.logs.logs, manualLog("P001", "2025-01-07", "08:00", "17:00"))
		require.NoError(t, f.cache.Invalidate(ctx))
	}

	first, err := f.service.GenerateAttendanceReport(ctx, req)
	require.NoError(t, err)
	row := findBreakdown(t, first, "P001", "2025-01-07")
	assert.Equal(t, string(report.StatusAbsent), row.Status)

	second, err := f.service.GenerateAttendanceReport(ctx, req)
	require.NoError(t, err)
	row = findBreakdown(t, second, "P001", "2025-01-07")
	assert.Equal(t, string(report.StatusOnTime), row.Status)
	assert.Equal(t, string(report.FlagManual), row.Flag)
	assert.Equal(t, 2, f.employees.calls)
}

func findBreakdown(t *testing.T, r report.AttendanceReport, personID, date string) report.DailyBreakdownResponse {
	t.Helper()
	for _, row := range r.Breakdown {
		if row.PersonID == personID && row.Date == date {
			return row
		}
	}
	require.Failf(t, "row not found", "%s on %s", personID, date)
	return report.DailyBreakdownResponse{}
}

func TestReportService_ExportAttendanceReport(t *testing.T) {
	f := newReportFixture(t, cache.NewNoopReportCache())

	file, err := f.service.ExportAttendanceReport(context.Background(), report.AttendanceReportRequest{
		StartDate: "2025-01-06",
		EndDate:   "2025-01-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "attendance_2025-01-06_2025-01-12.xlsx", file.Filename)
	assert.Equal(t, report.ContentTypeXLSX, file.ContentType)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "Breakdown"}, wb.GetSheetList())

	header, err := wb.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Person ID", header)

	person, err := wb.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "P001", person)

	status, err := wb.GetCellValue("Breakdown", "I2")
	require.NoError(t, err)
	assert.Equal(t, string(report.StatusOnTime), status)
}

func TestReportService_Archive(t *testing.T) {
	f := newReportFixture(t, cache.NewNoopReportCache())
	ctx := context.Background()
	now := time.Date(2025, 1, 13, 7, 0, 0, 0, time.UTC)

	path, err := f.service.ArchiveWeeklyReport(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "reports/attendance_2025-01-06_2025-01-12.xlsx", path)
	assert.Equal(t, 1, f.employees.calls)

	again, err := f.service.ArchiveWeeklyReport(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, f.employees.calls, "existing archive is not rebuilt")

	_, err = f.service.ArchiveWeeklyReport(ctx, now.AddDate(0, 0, 7))
	require.NoError(t, err)

	list, err := f.service.ListArchivedReports(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.ArchivedReportResponse{
		{Name: "attendance_2025-01-13_2025-01-19.xlsx"},
		{Name: "attendance_2025-01-06_2025-01-12.xlsx"},
	}, list)

	file, err := f.service.DownloadArchivedReport(ctx, "attendance_2025-01-06_2025-01-12.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, file.Content)

	_, err = f.service.DownloadArchivedReport(ctx, "../secrets.xlsx")
	assert.ErrorIs(t, err, report.ErrInvalidArchiveName)

	_, err = f.service.DownloadArchivedReport(ctx, "attendance_2024-01-01_2024-01-07.xlsx")
	assert.ErrorIs(t, err, report.ErrArchiveNotFound)
}
