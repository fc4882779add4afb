package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) GetByPersonID(ctx context.Context, personID string) (employee.Employee, error) {
	if personID != "P001" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: "e1", PersonID: "P001", Name: "Alice"}, nil
}

type fakeLogRepo struct {
	logs  []attendance.LogEntry
	saved []attendance.ManualEdit
}

func (f *fakeLogRepo) FetchLogs(ctx context.Context, start, end time.Time) ([]attendance.LogEntry, error) {
	var out []attendance.LogEntry
	for _, l := range f.logs {
		if !l.Date.Before(start) && !l.Date.After(end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) FetchPersonLogs(ctx context.Context, personID string, start, end time.Time) ([]attendance.LogEntry, error) {
	all, _ := f.FetchLogs(ctx, start, end)
	var out []attendance.LogEntry
	for _, l := range all {
		if l.PersonID == personID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) CreateManualEdit(ctx context.Context, edit attendance.ManualEdit) (attendance.ManualEdit, error) {
	edit.ID = "1"
	f.saved = append(f.saved, edit)
	f.logs = append([]attendance.LogEntry{edit.ToLogEntry()}, f.logs...)
	return edit, nil
}

func stamp(date, clock string) *time.Time {
	t := utils.MustParseTimeOfDay(clock).On(utils.MustParseDate(date))
	return &t
}

func editorContext(t *testing.T, email string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": "u1", "email": email})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newAttendanceFixture() (*AttendanceServiceImpl, *fakeLogRepo, *metrics.Metrics) {
	logs := &fakeLogRepo{logs: []attendance.LogEntry{
		{
			ID: "10", PersonID: "P001", Date: utils.MustParseDate("2025-01-06"),
			CheckIn: stamp("2025-01-06", "08:10"), CheckOut: stamp("2025-01-06", "17:00"),
			Source: attendance.SourceDevice,
		},
	}}
	m := metrics.New()
	svc := NewAttendanceService(passthroughTransactor{}, logs, fakeEmployeeRepo{}, cache.NewNoopReportCache(), m).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC) }
	return svc, logs, m
}

func TestAttendanceService_SubmitManualEntry(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		person  string
		date    string
		wantErr error
	}{
		{name: "add on empty day", mode: "add", person: "P001", date: "2025-01-07"},
		{name: "add on day with log", mode: "add", person: "P001", date: "2025-01-06", wantErr: attendance.ErrLogAlreadyExists},
		{name: "edit existing day", mode: "edit", person: "P001", date: "2025-01-06"},
		{name: "edit empty day", mode: "edit", person: "P001", date: "2025-01-07", wantErr: attendance.ErrLogNotFound},
		{name: "unknown person", mode: "add", person: "P999", date: "2025-01-07", wantErr: attendance.ErrEmployeeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs, m := newAttendanceFixture()
			ctx := editorContext(t, "admin@turbo.fm")

			resp, err := svc.SubmitManualEntry(ctx, attendance.ManualEntryRequest{
				Mode: tt.mode, PersonID: tt.person, Date: tt.date,
				ClockIn: "08:00", ClockOut: "17:00", Reason: "Scanner offline",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, logs.saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "manual-1", resp.ID)
			assert.Equal(t, string(attendance.SourceManual), resp.Source)
			require.NotNil(t, resp.CheckIn)
			assert.Equal(t, tt.date+"T08:00:00", *resp.CheckIn)
			require.NotNil(t, resp.UpdatedBy)
			assert.Equal(t, "admin@turbo.fm", *resp.UpdatedBy)

			require.Len(t, logs.saved, 1)
			assert.Equal(t, svc.now(), logs.saved[0].UpdatedAt)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ManualEntries.WithLabelValues(tt.mode)))
		})
	}
}

func TestAttendanceService_SubmitManualEntry_RequiresEditor(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	_, err := svc.SubmitManualEntry(context.Background(), attendance.ManualEntryRequest{
		Mode: "add", PersonID: "P001", Date: "2025-01-07", ClockIn: "08:00", ClockOut: "17:00", Reason: "x",
	})
	assert.ErrorIs(t, err, attendance.ErrMissingEditorEmail)
}

func TestAttendanceService_SubmitManualEntry_Validation(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	_, err := svc.SubmitManualEntry(editorContext(t, "admin@turbo.fm"), attendance.ManualEntryRequest{
		Mode: "replace", PersonID: " ", Date: "07/01/2025", ClockIn: "8am", ClockOut: "", Reason: "  ",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, field := range []string{"mode", "person_no", "date", "clock_in", "clock_out", "reason"} {
		assert.Contains(t, verrs.ToMap(), field)
	}
}

func TestAttendanceService_FindLog_ManualWins(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	ctx := editorContext(t, "admin@turbo.fm")

	before, err := svc.FindLog(ctx, attendance.FindLogRequest{PersonID: "P001", Date: "2025-01-06"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.SourceDevice), before.Source)

	_, err = svc.SubmitManualEntry(ctx, attendance.ManualEntryRequest{
		Mode: "edit", PersonID: "P001", Date: "2025-01-06", ClockIn: "07:58", ClockOut: "17:02", Reason: "Badge swap",
	})
	require.NoError(t, err)

	after, err := svc.FindLog(ctx, attendance.FindLogRequest{PersonID: "P001", Date: "2025-01-06"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.SourceManual), after.Source)
	assert.Equal(t, "2025-01-06T07:58:00", *after.CheckIn)

	_, err = svc.FindLog(ctx, attendance.FindLogRequest{PersonID: "P001", Date: "2025-01-09"})
	assert.ErrorIs(t, err, attendance.ErrNoLogOnDate)
}

func TestAttendanceService_FetchLogs(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	logs, err := svc.FetchLogs(context.Background(), attendance.FetchLogsRequest{StartDate: "2025-01-01", EndDate: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "P001", logs[0].PersonID)

	_, err = svc.FetchLogs(context.Background(), attendance.FetchLogsRequest{StartDate: "2024-01-01", EndDate: "2025-06-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
