package calendar

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

// SeedFile is the TOML layout read by cmd/seedcalendar:
//
//	year = 2026
//	weekend_days = ["Saturday", "Sunday"]
//
//	[[holiday]]
//	date = "2026-04-13"
//	name = "Songkran Holiday"
type SeedFile struct {
	Year        int           `toml:"year"`
	WeekendDays []string      `toml:"weekend_days"`
	Holidays    []SeedHoliday `toml:"holiday"`
}

type SeedHoliday struct {
	Date string `toml:"date"`
	Name string `toml:"name"`
}

// ParseSeed decodes a seed file and expands it into day types for the whole
// year. Workdays are omitted since a missing row already means Workday.
func ParseSeed(r io.Reader) ([]calendar.DayType, error) {
	var seed SeedFile
	meta, err := toml.NewDecoder(r).Decode(&seed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar seed: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in calendar seed", undecoded[0].String())
	}
	return seed.DayTypes()
}

func (s SeedFile) DayTypes() ([]calendar.DayType, error) {
	if s.Year < 2000 || s.Year > 9999 {
		return nil, fmt.Errorf("invalid year %d", s.Year)
	}

	weekend := make(map[time.Weekday]bool, len(s.WeekendDays))
	for _, name := range s.WeekendDays {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("invalid weekend day %q", name)
		}
		weekend[day] = true
	}

	byDate := make(map[string]calendar.DayType)
	first := time.Date(s.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Year() == s.Year; d = utils.NextDay(d) {
		if weekend[d.Weekday()] {
			byDate[utils.FormatDate(d)] = calendar.DayType{Date: d, DayType: calendar.DayTypeWeekend}
		}
	}

	for _, h := range s.Holidays {
		d, err := utils.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		if d.Year() != s.Year {
			return nil, fmt.Errorf("holiday %s is outside %d", h.Date, s.Year)
		}
		byDate[utils.FormatDate(d)] = calendar.DayType{Date: d, DayType: holidayName(h.Name)}
	}

	days := make([]calendar.DayType, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// holidayName keeps the "Holiday" marker the report relies on.
func holidayName(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return calendar.DayTypePublicHoliday
	case calendar.IsHoliday(name):
		return name
	default:
		return name + " Holiday"
	}
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, true
		}
	}
	return time.Sunday, false
}
