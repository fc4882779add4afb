package http

import (
	"net/http"

	"github.com/turbo-fm/facility-backend-go/internal/domain/dashboard"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetActiveStaff returns who is employed on a date, with department counts
	GetActiveStaff(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetActiveStaff handles GET /dashboard
func (h *dashboardHandlerImpl) GetActiveStaff(w http.ResponseWriter, r *http.Request) {
	req := dashboard.ActiveStaffRequest{
		Date:       r.URL.Query().Get("date"), // format: YYYY-MM-DD, default: today
		Department: r.URL.Query().Get("department"),
	}

	result, err := h.dashboardService.GetActiveStaff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
