package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	FetchLogs(w http.ResponseWriter, r *http.Request)
	FindLog(w http.ResponseWriter, r *http.Request)
	SubmitManualEntry(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// FetchLogs handles GET /attendance/logs?start_date=&end_date=
func (h *attendanceHandlerImpl) FetchLogs(w http.ResponseWriter, r *http.Request) {
	req := attendance.FetchLogsRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	results, err := h.attendanceService.FetchLogs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

// FindLog handles GET /attendance/logs/lookup?person_id=&date=
func (h *attendanceHandlerImpl) FindLog(w http.ResponseWriter, r *http.Request) {
	req := attendance.FindLogRequest{
		PersonID: r.URL.Query().Get("person_id"),
		Date:     r.URL.Query().Get("date"),
	}

	result, err := h.attendanceService.FindLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitManualEntry handles POST /attendance/manual-entries
func (h *attendanceHandlerImpl) SubmitManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SubmitManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry saved", result)
}
