package observation

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSummarize_StatusColor(t *testing.T) {
	cases := []struct {
		name       string
		indicators []Indicator
		want       StatusColor
	}{
		{"growth only", []Indicator{{Number: "1.1", Growth: true}}, ColorGrowth},
		{"good only", []Indicator{{Number: "1.1", Good: true}, {Number: "1.2", Good: true}}, ColorGood},
		{"both", []Indicator{{Number: "1.1", Good: true}, {Number: "1.2", Growth: true}}, ColorMixed},
		{"no marks", []Indicator{{Number: "1.1"}}, ColorMixed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := Summarize(&Record{ID: "o1", Meta: Meta{TeacherName: "Mai"}, Indicators: tc.indicators})
			if sum.StatusColor != tc.want {
				t.Errorf("statusColor = %q, want %q", sum.StatusColor, tc.want)
			}
		})
	}
}

func TestSummarize_ProgressCounters(t *testing.T) {
	rec := &Record{
		ID:   "o1",
		Meta: Meta{TeacherName: "Mai"},
		Indicators: []Indicator{
			{Number: "1.1", Good: true},                         // mark
			{Number: "1.2", CommentText: "needs wait time"},     // comment only
			{Number: "1.3", Strokes: []json.RawMessage{[]byte(`{}`)}}, // ink only
			{Number: "2.1", CommentText: "   "},                 // blank comment, nothing
			{Number: "2.2"},                                     // empty
		},
	}
	sum := Summarize(rec)
	if sum.Progress != 3 {
		t.Errorf("progress = %d, want 3", sum.Progress)
	}
	if sum.TotalIndicators != 5 {
		t.Errorf("totalIndicators = %d, want 5", sum.TotalIndicators)
	}
}

func TestSummarize_DatePrefersMetaDate(t *testing.T) {
	rec := &Record{
		ID:        "o1",
		Meta:      Meta{TeacherName: "Mai", Date: "2025-11-20"},
		UpdatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}
	sum := Summarize(rec)
	if sum.RawDate == nil {
		t.Fatal("expected a resolved date")
	}
	if MonthKeyOf(sum.RawDate) != "11.2025" {
		t.Errorf("month key = %q, want 11.2025 (meta.date wins over updatedAt)", MonthKeyOf(sum.RawDate))
	}
}

func TestSummarize_DateFallsBackToUpdatedAt(t *testing.T) {
	updated := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	rec := &Record{ID: "o1", Meta: Meta{TeacherName: "Mai", Date: "not a date"}, UpdatedAt: updated.UnixMilli()}
	sum := Summarize(rec)
	if sum.RawDate == nil {
		t.Fatal("expected fallback to updatedAt")
	}
	if !sum.RawDate.Equal(updated) {
		t.Errorf("rawDate = %v, want %v", sum.RawDate, updated)
	}
}

func TestSummarize_NoResolvableDate(t *testing.T) {
	sum := Summarize(&Record{ID: "o1", Meta: Meta{TeacherName: "Mai"}})
	if sum.RawDate != nil {
		t.Errorf("rawDate = %v, want nil", sum.RawDate)
	}
}

func TestSummarize_StatusDefaultsToDraft(t *testing.T) {
	sum := Summarize(&Record{ID: "o1", Meta: Meta{TeacherName: "Mai"}})
	if sum.Status != StatusDraft {
		t.Errorf("status = %q, want %q", sum.Status, StatusDraft)
	}
}

func TestValidate_RejectsEmptyShapes(t *testing.T) {
	if err := (&Record{Meta: Meta{TeacherName: "Mai"}}).Validate(); err == nil {
		t.Error("expected missing id to be rejected")
	}
	if err := (&Record{ID: "o1"}).Validate(); err == nil {
		t.Error("expected missing teacher name to be rejected")
	}
	if err := (&Record{ID: "o1", Meta: Meta{TeacherName: "Mai"}}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
