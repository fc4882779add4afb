package calendar

import (
	"strings"
	"time"
)

const (
	DayTypeWorkday       = "Workday"
	DayTypeWeekend       = "Weekend"
	DayTypePublicHoliday = "Public Holiday"
)

// DayType classifies one civil date. Dates without a row are workdays.
type DayType struct {
	Date    time.Time
	DayType string
}

// IsHoliday matches any day type naming a holiday ("Public Holiday", "Songkran Holiday", ...).
func IsHoliday(dayType string) bool {
	return strings.Contains(dayType, "Holiday")
}
