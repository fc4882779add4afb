package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance report as JSON
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Same report as an XLSX download
	ExportAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Weekly archives written by the scheduler
	ListArchivedReports(w http.ResponseWriter, r *http.Request)
	DownloadArchivedReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func attendanceReportRequest(r *http.Request) report.AttendanceReportRequest {
	q := r.URL.Query()
	return report.AttendanceReportRequest{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Department: q.Get("department"),
		Name:       q.Get("name"),
	}
}

// GetAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateAttendanceReport(r.Context(), attendanceReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportAttendanceReport handles GET /reports/attendance/export
func (h *reportHandlerImpl) ExportAttendanceReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportAttendanceReport(r.Context(), attendanceReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

// ListArchivedReports handles GET /reports/archives
func (h *reportHandlerImpl) ListArchivedReports(w http.ResponseWriter, r *http.Request) {
	results, err := h.reportService.ListArchivedReports(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

// DownloadArchivedReport handles GET /reports/archives/{name}
func (h *reportHandlerImpl) DownloadArchivedReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.DownloadArchivedReport(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
