package attendance

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type Source string

const (
	SourceDevice Source = "device"
	SourceManual Source = "manual"
)

// ManualIDPrefix marks manual entries in the merged log stream.
const ManualIDPrefix = "manual-"

// LogEntry is the common shape of device scans and manual corrections, one
// per person per date per source. Timestamps are naive wall-clock values.
type LogEntry struct {
	ID        string
	PersonID  string
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	Source    Source
	Reason    *string
	UpdatedBy *string
	UpdatedAt *time.Time
}

func (l *LogEntry) IsManual() bool {
	return l.Source == SourceManual
}

// ManualEdit is a stored correction row.
type ManualEdit struct {
	ID                   string
	PersonID             string
	Date                 time.Time
	ManualEntryTimestamp time.Time
	ManualExitTimestamp  time.Time
	EditReason           string
	UpdatedBy            string
	UpdatedAt            time.Time
}

func (m ManualEdit) ToLogEntry() LogEntry {
	in, out := m.ManualEntryTimestamp, m.ManualExitTimestamp
	reason, updatedBy, updatedAt := m.EditReason, m.UpdatedBy, m.UpdatedAt
	return LogEntry{
		ID:        ManualIDPrefix + m.ID,
		PersonID:  m.PersonID,
		Date:      m.Date,
		CheckIn:   &in,
		CheckOut:  &out,
		Source:    SourceManual,
		Reason:    &reason,
		UpdatedBy: &updatedBy,
		UpdatedAt: &updatedAt,
	}
}

type logKey struct {
	personID string
	date     string
}

// LogIndex resolves the effective entry per (person, date). A manual entry
// always wins over a device entry; among entries of the same source the first
// one indexed wins.
type LogIndex struct {
	entries map[logKey]LogEntry
}

func NewLogIndex(logs []LogEntry) LogIndex {
	idx := LogIndex{entries: make(map[logKey]LogEntry, len(logs))}
	for _, l := range logs {
		key := logKey{personID: l.PersonID, date: utils.FormatDate(l.Date)}
		current, ok := idx.entries[key]
		if !ok || (!current.IsManual() && l.IsManual()) {
			idx.entries[key] = l
		}
	}
	return idx
}

func (idx LogIndex) Lookup(personID string, date time.Time) (LogEntry, bool) {
	l, ok := idx.entries[logKey{personID: personID, date: utils.FormatDate(date)}]
	return l, ok
}
