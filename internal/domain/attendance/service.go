package attendance

import "context"

type AttendanceService interface {
	// FetchLogs returns the merged device + manual log stream for a date range
	FetchLogs(ctx context.Context, req FetchLogsRequest) ([]LogEntryResponse, error)

	// FindLog returns the effective entry for one person on one day
	FindLog(ctx context.Context, req FindLogRequest) (LogEntryResponse, error)

	// SubmitManualEntry records a correction, the only write path into the log stream
	SubmitManualEntry(ctx context.Context, req ManualEntryRequest) (LogEntryResponse, error)
}
