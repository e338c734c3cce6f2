// internal/domain/observation/dates.go
package observation

import (
	"fmt"
	"time"
)

const (
	observationDateLayout = "2006-01-02"
	monthKeyLayout        = "01.2006"
	displayDateLayout     = "02.01.2006"

	// UnknownMonthLabel is the bucket for observations whose date could not
	// be resolved. Such records never receive a real month key and therefore
	// never contribute to AM summaries.
	UnknownMonthLabel = "Unknown date"
)

// ParseObservationDate parses the "YYYY-MM-DD" date recorded in an
// observation's meta block. RFC3339 timestamps are accepted too so that
// documents written by older revisions still resolve.
func ParseObservationDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(observationDateLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// MonthKey returns the canonical "MM.YYYY" bucket for a point in time.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// MonthKeyOf returns the month key for a summary's resolved date, or "" when
// the date is unknown.
func MonthKeyOf(raw *time.Time) string {
	if raw == nil {
		return ""
	}
	return MonthKey(*raw)
}

// ParseMonthKey validates an "MM.YYYY" string and returns the first instant
// of that month. Used for input validation and chronological sorting.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q (want MM.YYYY): %w", key, err)
	}
	return t, nil
}

// MonthLabel renders a month key as a human heading, e.g. "November 2025".
func MonthLabel(key string) string {
	t, err := ParseMonthKey(key)
	if err != nil {
		return UnknownMonthLabel
	}
	return t.Format("January 2006")
}

// DisplayDate renders a resolved observation date for cards and next-steps
// lines, e.g. "20.11.2025".
func DisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}
