package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

const microsecondsPerMinute = int64(60 * time.Second / time.Microsecond)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func toPgTime(t utils.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Minutes()) * microsecondsPerMinute, Valid: true}
}

func fromPgTime(t pgtype.Time) utils.TimeOfDay {
	return utils.TimeOfDayFromMinutes(int(t.Microseconds / microsecondsPerMinute))
}

func scanShift(row pgx.Row, withEmployee bool) (shift.Shift, error) {
	var (
		s          shift.Shift
		start, end pgtype.Time
	)
	dest := []interface{}{
		&s.ID, &s.EmployeeID, &start, &end, &s.ActiveDate, &s.ExpiryDate, &s.CreatedAt, &s.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &s.PersonID, &s.EmployeeName, &s.Department)
	}
	if err := row.Scan(dest...); err != nil {
		return shift.Shift{}, err
	}
	s.StartTime, s.EndTime = fromPgTime(start), fromPgTime(end)
	return s, nil
}

func collectShifts(rows pgx.Rows, withEmployee bool) ([]shift.Shift, error) {
	defer rows.Close()

	shifts := []shift.Shift{}
	for rows.Next() {
		s, err := scanShift(rows, withEmployee)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.start_time, s.end_time, s.active_date, s.expiry_date, s.created_at, s.updated_at,
			e.person_id, e.name, e.department
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}
	return s, nil
}

// ListForRange implements shift.ShiftRepository. Newer assignments come first
// so they win when windows overlap.
func (r *shiftRepositoryImpl) ListForRange(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_time, end_time, active_date, expiry_date, created_at, updated_at
		FROM shifts
		WHERE active_date <= $2 AND (expiry_date IS NULL OR expiry_date >= $1)
		ORDER BY active_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for range: %w", err)
	}
	return collectShifts(rows, false)
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("e.department = $%d", len(args)))
	}
	if filter.ActiveOnly {
		args = append(args, filter.ActiveOn)
		where = append(where, fmt.Sprintf("(s.expiry_date IS NULL OR s.expiry_date >= $%d)", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT s.id, s.employee_id, s.start_time, s.end_time, s.active_date, s.expiry_date, s.created_at, s.updated_at,
			e.person_id, e.name, e.department
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY s.active_date DESC")

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return collectShifts(rows, true)
}

// HasOverlap implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	windowEnd := shift.OpenEndDate
	if end != nil {
		windowEnd = *end
	}

	query := `
		SELECT EXISTS(
			SELECT 1 FROM shifts
			WHERE employee_id = $1
				AND active_date <= $3
				AND (expiry_date IS NULL OR expiry_date >= $2)
				AND ($4::uuid IS NULL OR id <> $4::uuid)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, windowEnd, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check shift overlap for employee %s: %w", employeeID, err)
	}
	return exists, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to generate shift id: %w", err)
	}

	query := `
		INSERT INTO shifts (id, employee_id, start_time, end_time, active_date, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, start_time, end_time, active_date, expiry_date, created_at, updated_at
	`

	created, err := scanShift(q.QueryRow(ctx, query,
		id.String(), newShift.EmployeeID, toPgTime(newShift.StartTime), toPgTime(newShift.EndTime),
		newShift.ActiveDate, newShift.ExpiryDate,
	), false)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, updated shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET employee_id = $1, start_time = $2, end_time = $3, active_date = $4, expiry_date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, employee_id, start_time, end_time, active_date, expiry_date, created_at, updated_at
	`

	s, err := scanShift(q.QueryRow(ctx, query,
		updated.EmployeeID, toPgTime(updated.StartTime), toPgTime(updated.EndTime),
		updated.ActiveDate, updated.ExpiryDate, updated.ID,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift with id %s: %w", updated.ID, err)
	}
	return s, nil
}
