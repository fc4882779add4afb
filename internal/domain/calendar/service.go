package calendar

import "context"

type CalendarService interface {
	ListDayTypes(ctx context.Context, req ListDayTypesRequest) ([]DayTypeResponse, error)
	UpsertDayTypes(ctx context.Context, req UpsertDayTypesRequest) error
}
