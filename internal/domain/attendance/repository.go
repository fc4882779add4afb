package attendance

import (
	"context"
	"time"
)

type LogRepository interface {
	// FetchLogs returns device entries followed by manual entries dated in
	// [start, end]; manual entries are ordered newest first.
	FetchLogs(ctx context.Context, start, end time.Time) ([]LogEntry, error)
	// FetchPersonLogs is FetchLogs narrowed to one person.
	FetchPersonLogs(ctx context.Context, personID string, start, end time.Time) ([]LogEntry, error)
	CreateManualEdit(ctx context.Context, edit ManualEdit) (ManualEdit, error)
}
