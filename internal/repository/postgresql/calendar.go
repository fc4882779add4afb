package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
)

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepositoryImpl{db: db}
}

// List implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) List(ctx context.Context, start, end time.Time) ([]calendar.DayType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, day_type
		FROM date_dim
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list day types: %w", err)
	}
	defer rows.Close()

	days := []calendar.DayType{}
	for rows.Next() {
		var d calendar.DayType
		if err := rows.Scan(&d.Date, &d.DayType); err != nil {
			return nil, fmt.Errorf("failed to scan day type: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// Upsert implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) Upsert(ctx context.Context, days []calendar.DayType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO date_dim (date, day_type)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET day_type = EXCLUDED.day_type
	`

	batch := &pgx.Batch{}
	for _, d := range days {
		batch.Queue(query, d.Date, d.DayType)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for range days {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert day types: %w", err)
		}
	}
	return nil
}
