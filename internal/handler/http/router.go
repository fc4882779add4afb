package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/middleware"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/jwt"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
)

type Handlers struct {
	Auth       AuthHandler
	Dashboard  DashboardHandler
	Employee   EmployeeHandler
	Shift      ShiftHandler
	Attendance AttendanceHandler
	Calendar   CalendarHandler
	Report     ReportHandler
	Visitor    VisitorHandler
	User       UserHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	Metrics        *metrics.Metrics
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(opts.Metrics.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", opts.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(opts.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(opts.JWTService))

			r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/dashboard", h.Dashboard.GetActiveStaff)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/", h.Shift.ListShifts)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.CreateShift)
					r.Put("/{id}", h.Shift.UpdateShift)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/logs", h.Attendance.FetchLogs)
					r.Get("/logs/lookup", h.Attendance.FindLog)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Post("/manual-entries", h.Attendance.SubmitManualEntry)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCalendarView)).Get("/", h.Calendar.ListDayTypes)
				r.With(middleware.RequirePermission(user.PermissionCalendarManage)).Put("/", h.Calendar.UpsertDayTypes)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance", h.Report.GetAttendanceReport)
				r.Get("/attendance/export", h.Report.ExportAttendanceReport)
				r.Get("/archives", h.Report.ListArchivedReports)
				r.Get("/archives/{name}", h.Report.DownloadArchivedReport)
			})

			r.With(middleware.RequirePermission(user.PermissionVisitorView)).Get("/visitors", h.Visitor.ListMonth)

			// Master admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.ListUsers)
				r.Put("/{id}/role", h.User.UpdateRole)
				r.Put("/{id}/verification", h.User.UpdateVerification)
			})
		})
	})
	return r
}
