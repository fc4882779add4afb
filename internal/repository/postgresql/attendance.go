package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
)

type logRepositoryImpl struct {
	db *database.DB
}

func NewLogRepository(db *database.DB) attendance.LogRepository {
	return &logRepositoryImpl{db: db}
}

// FetchLogs implements attendance.LogRepository.
func (r *logRepositoryImpl) FetchLogs(ctx context.Context, start, end time.Time) ([]attendance.LogEntry, error) {
	return r.fetch(ctx, nil, start, end)
}

// FetchPersonLogs implements attendance.LogRepository.
func (r *logRepositoryImpl) FetchPersonLogs(ctx context.Context, personID string, start, end time.Time) ([]attendance.LogEntry, error) {
	return r.fetch(ctx, &personID, start, end)
}

func (r *logRepositoryImpl) fetch(ctx context.Context, personID *string, start, end time.Time) ([]attendance.LogEntry, error) {
	q := GetQuerier(ctx, r.db)

	rawQuery := `
		SELECT id::text, person_no, date, full_entry_timestamp, full_exit_timestamp
		FROM door3_raw
		WHERE date BETWEEN $1 AND $2
			AND ($3::text IS NULL OR person_no = $3::text)
		ORDER BY date, person_no
	`

	rows, err := q.Query(ctx, rawQuery, start, end, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device logs: %w", err)
	}
	logs, err := collectDeviceLogs(rows)
	if err != nil {
		return nil, err
	}

	manualQuery := `
		SELECT id::text, person_no, date, manual_entry_timestamp, manual_exit_timestamp,
			edit_reason, updated_by, updated_at
		FROM door3_manual_edits
		WHERE date BETWEEN $1 AND $2
			AND ($3::text IS NULL OR person_no = $3::text)
		ORDER BY updated_at DESC
	`

	rows, err = q.Query(ctx, manualQuery, start, end, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual edits: %w", err)
	}
	manual, err := collectManualEdits(rows)
	if err != nil {
		return nil, err
	}

	for _, m := range manual {
		logs = append(logs, m.ToLogEntry())
	}
	return logs, nil
}

func collectDeviceLogs(rows pgx.Rows) ([]attendance.LogEntry, error) {
	defer rows.Close()

	logs := []attendance.LogEntry{}
	for rows.Next() {
		l := attendance.LogEntry{Source: attendance.SourceDevice}
		if err := rows.Scan(&l.ID, &l.PersonID, &l.Date, &l.CheckIn, &l.CheckOut); err != nil {
			return nil, fmt.Errorf("failed to scan device log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanManualEdit(row pgx.Row) (attendance.ManualEdit, error) {
	var m attendance.ManualEdit
	err := row.Scan(
		&m.ID, &m.PersonID, &m.Date, &m.ManualEntryTimestamp, &m.ManualExitTimestamp,
		&m.EditReason, &m.UpdatedBy, &m.UpdatedAt,
	)
	return m, err
}

func collectManualEdits(rows pgx.Rows) ([]attendance.ManualEdit, error) {
	defer rows.Close()

	edits := []attendance.ManualEdit{}
	for rows.Next() {
		m, err := scanManualEdit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual edit: %w", err)
		}
		edits = append(edits, m)
	}
	return edits, rows.Err()
}

// CreateManualEdit implements attendance.LogRepository.
func (r *logRepositoryImpl) CreateManualEdit(ctx context.Context, edit attendance.ManualEdit) (attendance.ManualEdit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO door3_manual_edits (person_no, date, manual_entry_timestamp, manual_exit_timestamp, edit_reason, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, person_no, date, manual_entry_timestamp, manual_exit_timestamp, edit_reason, updated_by, updated_at
	`

	created, err := scanManualEdit(q.QueryRow(ctx, query,
		edit.PersonID, edit.Date, edit.ManualEntryTimestamp, edit.ManualExitTimestamp,
		edit.EditReason, edit.UpdatedBy, edit.UpdatedAt,
	))
	if err != nil {
		return attendance.ManualEdit{}, fmt.Errorf("failed to create manual edit: %w", err)
	}
	return created, nil
}
