package calendar

import (
	"context"
	"time"
)

type CalendarRepository interface {
	List(ctx context.Context, start, end time.Time) ([]DayType, error)
	Upsert(ctx context.Context, days []DayType) error
}
