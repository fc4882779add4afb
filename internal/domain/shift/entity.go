package shift

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

// OpenEndDate stands in for a missing expiry date when comparing windows.
var OpenEndDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// Shift is one employee's recurring daily working hours, valid from
// ActiveDate through ExpiryDate (inclusive, nil means indefinite).
type Shift struct {
	ID         string
	EmployeeID string
	StartTime  utils.TimeOfDay
	EndTime    utils.TimeOfDay
	ActiveDate time.Time
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	PersonID     string
	EmployeeName string
	Department   string
}

// AppliesOn reports whether the validity window contains date.
func (s *Shift) AppliesOn(date time.Time) bool {
	if s.ActiveDate.After(date) {
		return false
	}
	return s.ExpiryDate == nil || !s.ExpiryDate.Before(date)
}

// IsOvernight compares hours only: 22:00-06:00 is overnight, 23:30-23:10 is not.
// Attendance classification depends on this exact rule.
func (s *Shift) IsOvernight() bool {
	return s.StartTime.Hour() > s.EndTime.Hour()
}

// CrossesMidnight compares full minutes. Used for display only.
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime.Minutes() < s.StartTime.Minutes()
}

// DurationMinutes is (end - start) mod 1440.
func (s *Shift) DurationMinutes() int {
	return s.StartTime.MinutesUntil(s.EndTime)
}

// WindowEnd returns the expiry date or OpenEndDate.
func (s *Shift) WindowEnd() time.Time {
	if s.ExpiryDate == nil {
		return OpenEndDate
	}
	return *s.ExpiryDate
}

// Overlaps reports whether the window [start, end] intersects this shift's window.
// A nil end is treated as OpenEndDate.
func (s *Shift) Overlaps(start time.Time, end *time.Time) bool {
	otherEnd := OpenEndDate
	if end != nil {
		otherEnd = *end
	}
	return !s.ActiveDate.After(otherEnd) && !s.WindowEnd().Before(start)
}
