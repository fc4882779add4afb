package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// HasEmailDomain reports whether email belongs to domain (e.g. "turbo.co.th").
// An empty domain accepts every address.
func HasEmailDomain(email, domain string) bool {
	if domain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(strings.TrimPrefix(domain, "@")))
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := utils.ParseDate(dateStr)
	return date, err == nil
}

// IsValidTime checks a strict 24h HH:MM clock string.
func IsValidTime(timeStr string) bool {
	return utils.IsValidTimeOfDay(timeStr)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ValidateDateRange checks a start/end pair of "YYYY-MM-DD" strings, both required,
// start not after end, and at most maxDays calendar days when maxDays > 0.
func ValidateDateRange(startStr, endStr string, maxDays int) (time.Time, time.Time, ValidationErrors) {
	var errs ValidationErrors

	start, startOK := IsValidDate(startStr)
	if IsEmpty(startStr) {
		errs.Add("start_date", "start_date is required")
	} else if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	end, endOK := IsValidDate(endStr)
	if IsEmpty(endStr) {
		errs.Add("end_date", "end_date is required")
	} else if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK {
		if start.After(end) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if maxDays > 0 && utils.DaysInRange(start, end) > maxDays {
			errs.Add("end_date", "date range must not exceed "+strconv.Itoa(maxDays)+" days")
		}
	}

	return start, end, errs
}
