package report

import "errors"

var (
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrReportGenerationFailed = errors.New("failed to generate report")
	ErrExportFailed           = errors.New("failed to export report")
	ErrArchiveNotFound        = errors.New("archived report not found")
	ErrInvalidArchiveName     = errors.New("invalid archived report name")
)
