package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
)

type CalendarServiceImpl struct {
	calendarRepo calendar.CalendarRepository
	reportCache  cache.ReportCache
}

func NewCalendarService(calendarRepo calendar.CalendarRepository, reportCache cache.ReportCache) calendar.CalendarService {
	return &CalendarServiceImpl{calendarRepo: calendarRepo, reportCache: reportCache}
}

// ListDayTypes implements calendar.CalendarService. Dates without a row are
// simply absent from the result.
func (s *CalendarServiceImpl) ListDayTypes(ctx context.Context, req calendar.ListDayTypesRequest) ([]calendar.DayTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := req.Range()

	days, err := s.calendarRepo.List(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list day types: %w", err)
	}

	responses := make([]calendar.DayTypeResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, calendar.ToResponse(d))
	}
	return responses, nil
}

// UpsertDayTypes implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpsertDayTypes(ctx context.Context, req calendar.UpsertDayTypesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.calendarRepo.Upsert(ctx, req.ToDayTypes()); err != nil {
		return fmt.Errorf("failed to save day types: %w", err)
	}

	if err := s.reportCache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "error", err)
	}
	slog.Info("calendar updated", "days", len(req.Days))
	return nil
}
