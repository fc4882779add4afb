package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/dashboard"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
	"github.com/turbo-fm/facility-backend-go/internal/domain/visitor"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/jwt"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

type stubEmployeeService struct{ employee.EmployeeService }

func (stubEmployeeService) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "e1", PersonID: "P001", Name: "Alice", Department: "Security"}}, nil
}

func (stubEmployeeService) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

type stubShiftService struct{ shift.ShiftService }

func (stubShiftService) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, shift.ErrShiftOverlap
}

type stubAttendanceService struct{ attendance.AttendanceService }

func (stubAttendanceService) SubmitManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.LogEntryResponse, error) {
	return attendance.LogEntryResponse{}, attendance.ErrLogAlreadyExists
}

type stubCalendarService struct{ calendar.CalendarService }

func (stubCalendarService) ListDayTypes(ctx context.Context, req calendar.ListDayTypesRequest) ([]calendar.DayTypeResponse, error) {
	var errs validator.ValidationErrors
	errs.Add("start_date", "start_date is required")
	return nil, errs
}

type stubReportService struct{ report.ReportService }

func (stubReportService) ExportAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.ExportedFile, error) {
	return report.ExportedFile{
		Filename:    "attendance_" + req.StartDate + "_" + req.EndDate + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK"),
	}, nil
}

func (stubReportService) DownloadArchivedReport(ctx context.Context, name string) (report.ExportedFile, error) {
	return report.ExportedFile{}, report.ErrArchiveNotFound
}

type stubVisitorService struct{ visitor.VisitorService }

func (stubVisitorService) ListMonth(ctx context.Context, req visitor.ListMonthRequest) ([]visitor.VisitorResponse, error) {
	return nil, visitor.ErrFutureMonth
}

type stubDashboardService struct{ dashboard.DashboardService }

type stubUserService struct{ user.UserService }

func (stubUserService) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	return []user.UserResponse{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp, false)

	r := NewRouter(RouterOptions{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{handlerTestFrontend},
		JWTService:     jwtService,
		Metrics:        metrics.New(),
	}, Handlers{
		Auth:       NewAuthHandler(jwtService, &fakeAuthService{}, nil, handlerTestFrontend, false),
		Dashboard:  NewDashboardHandler(stubDashboardService{}),
		Employee:   NewEmployeeHandler(stubEmployeeService{}),
		Shift:      NewShiftHandler(stubShiftService{}),
		Attendance: NewAttendanceHandler(stubAttendanceService{}),
		Calendar:   NewCalendarHandler(stubCalendarService{}),
		Report:     NewReportHandler(stubReportService{}),
		Visitor:    NewVisitorHandler(stubVisitorService{}),
		User:       NewUserHandler(stubUserService{}),
	})
	return r, jwtService
}

func bearer(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken("u-"+string(role), string(role)+"@turbo.fm", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	router, jwtService := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		role       user.Role
		wantStatus int
		wantBody   string
	}{
		{name: "heartbeat", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "no token", method: http.MethodGet, path: "/api/v1/employees", wantStatus: http.StatusUnauthorized},
		{name: "viewer lists roster", method: http.MethodGet, path: "/api/v1/employees", role: user.RoleUser, wantStatus: http.StatusOK, wantBody: `"total_items":1`},
		{name: "viewer cannot create", method: http.MethodPost, path: "/api/v1/employees", body: `{}`, role: user.RoleUser, wantStatus: http.StatusForbidden},
		{name: "missing employee", method: http.MethodGet, path: "/api/v1/employees/e9", role: user.RoleAdmin, wantStatus: http.StatusNotFound},
		{name: "overlapping shift", method: http.MethodPost, path: "/api/v1/shifts", body: `{}`, role: user.RoleAdmin, wantStatus: http.StatusConflict},
		{name: "duplicate manual entry", method: http.MethodPost, path: "/api/v1/attendance/manual-entries", body: `{}`, role: user.RoleAdmin, wantStatus: http.StatusConflict, wantBody: "use edit mode"},
		{name: "calendar validation", method: http.MethodGet, path: "/api/v1/calendar", role: user.RoleUser, wantStatus: http.StatusUnprocessableEntity, wantBody: `"start_date":"start_date is required"`},
		{name: "calendar write needs admin", method: http.MethodPut, path: "/api/v1/calendar", body: `{}`, role: user.RoleUser, wantStatus: http.StatusForbidden},
		{name: "archive not found", method: http.MethodGet, path: "/api/v1/reports/archives/attendance_2025-01-06_2025-01-12.xlsx", role: user.RoleUser, wantStatus: http.StatusNotFound},
		{name: "visitor bad year", method: http.MethodGet, path: "/api/v1/visitors?year=abc&month=1", role: user.RoleUser, wantStatus: http.StatusBadRequest},
		{name: "visitor future month", method: http.MethodGet, path: "/api/v1/visitors?year=2030&month=1", role: user.RoleUser, wantStatus: http.StatusBadRequest, wantBody: "future month"},
		{name: "users need master admin", method: http.MethodGet, path: "/api/v1/users", role: user.RoleAdmin, wantStatus: http.StatusForbidden},
		{name: "master admin lists users", method: http.MethodGet, path: "/api/v1/users", role: user.RoleMasterAdmin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, jwtService, tt.role))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouter_ExportReport(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance/export?start_date=2025-01-06&end_date=2025-01-12", nil)
	req.Header.Set("Authorization", bearer(t, jwtService, user.RoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=attendance_2025-01-06_2025-01-12.xlsx`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total{")
	assert.Contains(t, rec.Body.String(), `status="401"`)
}
