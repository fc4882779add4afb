package utils

import (
	"fmt"
	"time"
)

// DateLayout is the civil date layout used on the wire and in the database.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a civil date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Date truncates t to its civil date. The wall clock is kept as-is; no zone
// conversion happens.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a civil date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional date, nil stays nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// NextDay returns the civil date after d.
func NextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// DaysInRange counts calendar days in [start, end], inclusive. It returns 0
// when end is before start.
func DaysInRange(start, end time.Time) int {
	s, e := Date(start), Date(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// PreviousWeek returns Monday and Sunday of the week before the one containing now.
func PreviousWeek(now time.Time) (time.Time, time.Time) {
	today := Date(now)
	offset := int(today.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	currentMonday := today.AddDate(0, 0, -offset)
	prevMonday := currentMonday.AddDate(0, 0, -7)
	return prevMonday, prevMonday.AddDate(0, 0, 6)
}

// ClockString renders the wall-clock part of a timestamp as "HH:MM".
func ClockString(t time.Time) string {
	return t.Format("15:04")
}
