package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByPersonID(ctx context.Context, personID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	ListActiveOn(ctx context.Context, date time.Time) ([]Employee, error)
	ExistsByPersonID(ctx context.Context, personID string, excludeID *string) (bool, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, updated Employee) (Employee, error)
}
