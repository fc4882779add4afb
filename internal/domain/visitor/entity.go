package visitor

import "time"

type Visitor struct {
	ID             string
	VisitorName    string
	Host           *string
	VisitPurpose   *string
	DateEntry      time.Time
	FirstEntryTime *time.Time
}

// FirstAvailableMonth is the earliest month with visitor data.
var FirstAvailableMonth = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
