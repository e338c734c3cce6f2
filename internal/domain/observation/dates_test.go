package observation

import (
	"testing"
	"time"
)

func TestParseObservationDate_ISODate(t *testing.T) {
	got, ok := ParseObservationDate("2025-11-20")
	if !ok {
		t.Fatal("expected 2025-11-20 to parse")
	}
	want := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed = %v, want %v", got, want)
	}
}

func TestParseObservationDate_RFC3339(t *testing.T) {
	got, ok := ParseObservationDate("2025-11-20T09:30:00Z")
	if !ok {
		t.Fatal("expected RFC3339 timestamp to parse")
	}
	if got.Day() != 20 || got.Month() != time.November {
		t.Errorf("unexpected parsed value: %v", got)
	}
}

func TestParseObservationDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "soon", "20/11/2025", "2025-13-01"} {
		if _, ok := ParseObservationDate(s); ok {
			t.Errorf("expected %q not to parse", s)
		}
	}
}

func TestMonthKey_Format(t *testing.T) {
	ts := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "11.2025" {
		t.Errorf("MonthKey = %q, want %q", got, "11.2025")
	}
	if got := MonthKey(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)); got != "01.2026" {
		t.Errorf("MonthKey = %q, want zero-padded %q", got, "01.2026")
	}
}

func TestMonthKeyOf_NilDate(t *testing.T) {
	if got := MonthKeyOf(nil); got != "" {
		t.Errorf("MonthKeyOf(nil) = %q, want empty", got)
	}
}

func TestParseMonthKey_RoundTrip(t *testing.T) {
	ts, err := ParseMonthKey("11.2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if MonthKey(ts) != "11.2025" {
		t.Errorf("round trip gave %q", MonthKey(ts))
	}
}

func TestParseMonthKey_Invalid(t *testing.T) {
	for _, s := range []string{"2025-11", "11/2025", "13.2025", "November"} {
		if _, err := ParseMonthKey(s); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("11.2025"); got != "November 2025" {
		t.Errorf("MonthLabel = %q, want %q", got, "November 2025")
	}
	if got := MonthLabel("garbage"); got != UnknownMonthLabel {
		t.Errorf("MonthLabel(garbage) = %q, want %q", got, UnknownMonthLabel)
	}
}

func TestDisplayDate(t *testing.T) {
	ts := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	if got := DisplayDate(ts); got != "05.11.2025" {
		t.Errorf("DisplayDate = %q, want %q", got, "05.11.2025")
	}
}
