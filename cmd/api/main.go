package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/config"
	appHTTP "github.com/turbo-fm/facility-backend-go/internal/handler/http"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cron"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/jwt"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/logger"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/oauth"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/storage"
	"github.com/turbo-fm/facility-backend-go/internal/repository/postgresql"
	attendanceService "github.com/turbo-fm/facility-backend-go/internal/service/attendance"
	serviceAuth "github.com/turbo-fm/facility-backend-go/internal/service/auth"
	calendarService "github.com/turbo-fm/facility-backend-go/internal/service/calendar"
	dashboardService "github.com/turbo-fm/facility-backend-go/internal/service/dashboard"
	employeeService "github.com/turbo-fm/facility-backend-go/internal/service/employee"
	reportService "github.com/turbo-fm/facility-backend-go/internal/service/report"
	shiftService "github.com/turbo-fm/facility-backend-go/internal/service/shift"
	userService "github.com/turbo-fm/facility-backend-go/internal/service/user"
	visitorService "github.com/turbo-fm/facility-backend-go/internal/service/visitor"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Service:  "facility-backend",
		Level:    cfg.App.LogLevel,
		FilePath: cfg.App.LogFile,
		Console:  os.Stdout,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	reportCache := cache.NewNoopReportCache()
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		reportCache = cache.NewRedisReportCache(redisClient, cfg.Redis.TTL)
		slog.Info("Report cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Driver {
	case config.StorageS3:
		fileStorage, err = storage.NewS3Storage(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.S3Endpoint)
	default:
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.LocalPath)
	}
	if err != nil {
		return fmt.Errorf("initialize %s storage: %w", cfg.Storage.Driver, err)
	}

	m := metrics.New()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	logRepo := postgresql.NewLogRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	visitorRepo := postgresql.NewVisitorRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.IsProduction())
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, tokenRepo, JWTService, cfg.Auth.AllowedEmailDomain)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, reportCache)
	shiftSvc := shiftService.NewShiftService(transactor, shiftRepo, employeeRepo, reportCache)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, logRepo, employeeRepo, reportCache, m)
	calendarSvc := calendarService.NewCalendarService(calendarRepo, reportCache)
	reportSvc := reportService.NewReportService(employeeRepo, shiftRepo, logRepo, calendarRepo, fileStorage, reportCache, m)
	visitorSvc := visitorService.NewVisitorService(visitorRepo)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo)
	userSvc := userService.NewUserService(userRepo)

	scheduler := cron.NewScheduler(m.ObserveCronJob)
	if cfg.ReportArchive.Enabled {
		cron.NewReportJobs(reportSvc, cfg.ReportArchive.Weekday, cfg.ReportArchive.Hour).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.App.AllowedOrigins,
		JWTService:     JWTService,
		Metrics:        m,
	}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc, googleService, cfg.App.FrontendURL, cfg.App.IsProduction()),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Visitor:    appHTTP.NewVisitorHandler(visitorSvc),
		User:       appHTTP.NewUserHandler(userSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
