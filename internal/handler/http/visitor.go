package http

import (
	"net/http"
	"strconv"

	"github.com/turbo-fm/facility-backend-go/internal/domain/visitor"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
)

type VisitorHandler interface {
	ListMonth(w http.ResponseWriter, r *http.Request)
}

type visitorHandlerImpl struct {
	visitorService visitor.VisitorService
}

func NewVisitorHandler(visitorService visitor.VisitorService) VisitorHandler {
	return &visitorHandlerImpl{visitorService: visitorService}
}

// ListMonth handles GET /visitors?year=&month=
func (h *visitorHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}

	results, err := h.visitorService.ListMonth(r.Context(), visitor.ListMonthRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}
