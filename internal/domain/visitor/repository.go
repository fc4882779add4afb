package visitor

import (
	"context"
	"time"
)

type VisitorRepository interface {
	// ListByDateRange returns visitors with date_entry in [start, end], newest first.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Visitor, error)
}
