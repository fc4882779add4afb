package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
	// ListForRange returns shifts whose validity window intersects [start, end].
	ListForRange(ctx context.Context, start, end time.Time) ([]Shift, error)
	// List returns shifts joined with employee fields, newest active date first.
	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)
	// HasOverlap checks the employee's other shifts against [start, end]; excludeID skips the shift being edited.
	HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID *string) (bool, error)
	Create(ctx context.Context, newShift Shift) (Shift, error)
	Update(ctx context.Context, updated Shift) (Shift, error)
}
