package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/visitor"
)

type VisitorServiceImpl struct {
	visitorRepo visitor.VisitorRepository
	now         func() time.Time
}

func NewVisitorService(visitorRepo visitor.VisitorRepository) visitor.VisitorService {
	return &VisitorServiceImpl{visitorRepo: visitorRepo, now: time.Now}
}

// ListMonth implements visitor.VisitorService.
func (s *VisitorServiceImpl) ListMonth(ctx context.Context, req visitor.ListMonthRequest) ([]visitor.VisitorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end := req.Range()
	if start.Before(visitor.FirstAvailableMonth) {
		return nil, visitor.ErrMonthTooEarly
	}
	now := s.now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start.After(currentMonth) {
		return nil, visitor.ErrFutureMonth
	}

	visitors, err := s.visitorRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}

	responses := make([]visitor.VisitorResponse, 0, len(visitors))
	for _, v := range visitors {
		responses = append(responses, visitor.ToResponse(v))
	}
	return responses, nil
}
