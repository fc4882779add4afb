package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type ShiftServiceImpl struct {
	transactor   database.Transactor
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	reportCache  cache.ReportCache
	now          func() time.Time
}

func NewShiftService(
	transactor database.Transactor,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	reportCache cache.ReportCache,
) shift.ShiftService {
	return &ShiftServiceImpl{
		transactor:   transactor,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		reportCache:  reportCache,
		now:          time.Now,
	}
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.ActiveOnly && filter.ActiveOn.IsZero() {
		filter.ActiveOn = utils.Date(s.now())
	}

	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToResponse(sh))
	}
	return responses, nil
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var saved shift.Shift
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		newShift := req.ToShift()
		if err := s.checkAssignment(txCtx, newShift, nil); err != nil {
			return err
		}

		created, err := s.shiftRepo.Create(txCtx, newShift)
		if err != nil {
			return err
		}

		saved, err = s.shiftRepo.GetByID(txCtx, created.ID)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.invalidateReports(ctx)
	slog.Info("shift created", "shift_id", saved.ID, "employee_id", saved.EmployeeID)
	return shift.ToResponse(saved), nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var saved shift.Shift
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		changes := req.ToShift()

		if _, err := s.shiftRepo.GetByID(txCtx, changes.ID); err != nil {
			return err
		}
		if err := s.checkAssignment(txCtx, changes, &changes.ID); err != nil {
			return err
		}

		if _, err := s.shiftRepo.Update(txCtx, changes); err != nil {
			return err
		}

		var err error
		saved, err = s.shiftRepo.GetByID(txCtx, changes.ID)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.invalidateReports(ctx)
	slog.Info("shift updated", "shift_id", saved.ID, "employee_id", saved.EmployeeID)
	return shift.ToResponse(saved), nil
}

// checkAssignment enforces the employment window and the no-overlap rule.
func (s *ShiftServiceImpl) checkAssignment(ctx context.Context, sh shift.Shift, excludeID *string) error {
	emp, err := s.employeeRepo.GetByID(ctx, sh.EmployeeID)
	if err != nil {
		return err
	}

	if !emp.IsOnboarded() {
		return shift.ErrEmployeeNotOnboarded
	}
	if sh.ActiveDate.Before(*emp.EffectiveDate) {
		return shift.ErrBeforeEffectiveDate
	}
	if emp.ResignationDate != nil && sh.ActiveDate.After(*emp.ResignationDate) {
		return shift.ErrAfterResignationDate
	}

	overlap, err := s.shiftRepo.HasOverlap(ctx, sh.EmployeeID, sh.ActiveDate, sh.ExpiryDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check shift overlap: %w", err)
	}
	if overlap {
		return shift.ErrShiftOverlap
	}
	return nil
}

func (s *ShiftServiceImpl) invalidateReports(ctx context.Context) {
	if err := s.reportCache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "error", err)
	}
}
