package summary

import (
	"testing"

	"am_summary_bot/internal/domain/observation"
)

func boolPtr(b bool) *bool { return &b }

func TestIndicatorQualifies_ExplicitFlag(t *testing.T) {
	included := observation.Indicator{Number: "3.1", CommentText: "Good pacing", IncludeInTrainerSummary: boolPtr(true)}
	if !IndicatorQualifies(included) {
		t.Error("explicitly included indicator with comment should qualify")
	}

	// The explicit flag overrides the legacy growth heuristic.
	excluded := observation.Indicator{Number: "3.1", CommentText: "Good pacing", Growth: true, IncludeInTrainerSummary: boolPtr(false)}
	if IndicatorQualifies(excluded) {
		t.Error("includeInTrainerSummary=false must exclude even growth-marked indicators")
	}
}

func TestIndicatorQualifies_LegacyGrowthFallback(t *testing.T) {
	legacyGrowth := observation.Indicator{Number: "3.1", CommentText: "Needs more wait time", Growth: true}
	if !IndicatorQualifies(legacyGrowth) {
		t.Error("legacy indicator (no flag) with growth and comment should qualify")
	}

	legacyGood := observation.Indicator{Number: "3.1", CommentText: "Needs more wait time", Growth: false}
	if IndicatorQualifies(legacyGood) {
		t.Error("legacy indicator without growth mark should not qualify")
	}
}

func TestIndicatorQualifies_RequiresComment(t *testing.T) {
	cases := []observation.Indicator{
		{Number: "3.1", Growth: true},                                            // no comment
		{Number: "3.1", Growth: true, CommentText: "   "},                        // blank comment
		{Number: "3.1", IncludeInTrainerSummary: boolPtr(true)},                  // flagged but empty
		{Number: "3.1", IncludeInTrainerSummary: boolPtr(true), CommentText: ""}, // flagged but empty
	}
	for i, ind := range cases {
		if IndicatorQualifies(ind) {
			t.Errorf("case %d: indicator without comment text must not qualify", i)
		}
	}
}
