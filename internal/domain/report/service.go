package report

import (
	"context"
	"time"
)

// ReportService defines the interface for attendance report generation
type ReportService interface {
	// GenerateAttendanceReport reconciles logs against shifts for a date range
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)

	// ExportAttendanceReport renders the same report as an XLSX workbook
	ExportAttendanceReport(ctx context.Context, req AttendanceReportRequest) (ExportedFile, error)

	// ArchiveWeeklyReport stores the previous week's workbook in file storage and returns its path
	ArchiveWeeklyReport(ctx context.Context, now time.Time) (string, error)

	// ListArchivedReports returns the stored workbook names, newest first
	ListArchivedReports(ctx context.Context) ([]ArchivedReportResponse, error)

	// DownloadArchivedReport reads one stored workbook by name
	DownloadArchivedReport(ctx context.Context, name string) (ExportedFile, error)
}
