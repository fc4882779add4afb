package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	transactor   database.Transactor
	logRepo      attendance.LogRepository
	employeeRepo employee.EmployeeRepository
	reportCache  cache.ReportCache
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewAttendanceService(
	transactor database.Transactor,
	logRepo attendance.LogRepository,
	employeeRepo employee.EmployeeRepository,
	reportCache cache.ReportCache,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		transactor:   transactor,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		reportCache:  reportCache,
		metrics:      m,
		now:          time.Now,
	}
}

// editorEmail reads the caller's email from the verified access token.
func editorEmail(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", attendance.ErrMissingEditorEmail, err)
	}
	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return "", attendance.ErrMissingEditorEmail
	}
	return email, nil
}

// FetchLogs implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FetchLogs(ctx context.Context, req attendance.FetchLogsRequest) ([]attendance.LogEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := req.Range()

	logs, err := s.logRepo.FetchLogs(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	responses := make([]attendance.LogEntryResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, attendance.ToResponse(l))
	}
	return responses, nil
}

// FindLog implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FindLog(ctx context.Context, req attendance.FindLogRequest) (attendance.LogEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogEntryResponse{}, err
	}

	date := utils.MustParseDate(req.Date)
	personID := strings.TrimSpace(req.PersonID)

	logs, err := s.logRepo.FetchPersonLogs(ctx, personID, date, date)
	if err != nil {
		return attendance.LogEntryResponse{}, fmt.Errorf("failed to fetch logs for %s: %w", personID, err)
	}

	entry, ok := attendance.NewLogIndex(logs).Lookup(personID, date)
	if !ok {
		return attendance.LogEntryResponse{}, attendance.ErrNoLogOnDate
	}
	return attendance.ToResponse(entry), nil
}

// SubmitManualEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SubmitManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.LogEntryResponse, error) {
	req.PersonID = strings.TrimSpace(req.PersonID)
	req.Reason = strings.TrimSpace(req.Reason)
	if err := req.Validate(); err != nil {
		return attendance.LogEntryResponse{}, err
	}

	updatedBy, err := editorEmail(ctx)
	if err != nil {
		return attendance.LogEntryResponse{}, err
	}

	var created attendance.ManualEdit
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByPersonID(txCtx, req.PersonID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return attendance.ErrEmployeeNotFound
			}
			return err
		}

		date := utils.MustParseDate(req.Date)
		existing, err := s.logRepo.FetchPersonLogs(txCtx, req.PersonID, date, date)
		if err != nil {
			return fmt.Errorf("failed to check existing logs: %w", err)
		}

		switch attendance.EntryMode(req.Mode) {
		case attendance.EntryModeAdd:
			if len(existing) > 0 {
				return attendance.ErrLogAlreadyExists
			}
		case attendance.EntryModeEdit:
			if len(existing) == 0 {
				return attendance.ErrLogNotFound
			}
		}

		created, err = s.logRepo.CreateManualEdit(txCtx, req.ToManualEdit(updatedBy, s.now()))
		return err
	})
	if err != nil {
		return attendance.LogEntryResponse{}, err
	}

	s.metrics.ObserveManualEntry(req.Mode)
	if err := s.reportCache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "error", err)
	}

	slog.Info("manual attendance entry saved",
		"mode", req.Mode,
		"person_id", created.PersonID,
		"date", utils.FormatDate(created.Date),
		"updated_by", updatedBy,
	)
	return attendance.ToResponse(created.ToLogEntry()), nil
}
