package http

import (
	"encoding/json"
	"net/http"

	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	ListDayTypes(w http.ResponseWriter, r *http.Request)
	UpsertDayTypes(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

// ListDayTypes handles GET /calendar?start_date=&end_date=
func (h *calendarHandlerImpl) ListDayTypes(w http.ResponseWriter, r *http.Request) {
	req := calendar.ListDayTypesRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	results, err := h.calendarService.ListDayTypes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

// UpsertDayTypes handles PUT /calendar
func (h *calendarHandlerImpl) UpsertDayTypes(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpsertDayTypesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.calendarService.UpsertDayTypes(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calendar updated", nil)
}
