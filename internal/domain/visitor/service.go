package visitor

import "context"

type VisitorService interface {
	ListMonth(ctx context.Context, req ListMonthRequest) ([]VisitorResponse, error)
}
