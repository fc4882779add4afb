package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/visitor"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
)

type visitorRepositoryImpl struct {
	db *database.DB
}

func NewVisitorRepository(db *database.DB) visitor.VisitorRepository {
	return &visitorRepositoryImpl{db: db}
}

// ListByDateRange implements visitor.VisitorRepository.
func (r *visitorRepositoryImpl) ListByDateRange(ctx context.Context, start, end time.Time) ([]visitor.Visitor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id::text, visitor_name, host, visit_purpose, date_entry, first_entry_time
		FROM visitor
		WHERE date_entry BETWEEN $1 AND $2
		ORDER BY date_entry DESC, first_entry_time DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []visitor.Visitor{}
	for rows.Next() {
		var v visitor.Visitor
		if err := rows.Scan(&v.ID, &v.VisitorName, &v.Host, &v.VisitPurpose, &v.DateEntry, &v.FirstEntryTime); err != nil {
			return nil, fmt.Errorf("failed to scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}
