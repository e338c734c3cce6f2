// internal/domain/summary/row.go
package summary

import (
	"strings"

	"am_summary_bot/internal/domain/observation"
)

// RowStatus is the operator-set annotation on a summary row. It is purely a
// manual mark made while reviewing the draft, never derived from data.
type RowStatus string

const (
	RowStatusNone  RowStatus = "none"
	RowStatusGreen RowStatus = "green"
	RowStatusRed   RowStatus = "red"
)

// Row is one line of a monthly AM summary, unique per
// (teacher, school, campus) within the selected month and AM.
type Row struct {
	SchoolName  string
	Campus      string
	TeacherName string
	Status      RowStatus
	// NextSteps accumulates qualifying indicator comments across all of the
	// teacher's observations in the month, newline-joined in scan order.
	NextSteps string
}

// IndicatorQualifies decides whether an indicator's comment belongs in the
// trainer-facing summary. The explicit includeInTrainerSummary flag always
// wins; documents written before that flag existed fall back to the growth
// mark so pre-existing data is not lost.
func IndicatorQualifies(ind observation.Indicator) bool {
	if strings.TrimSpace(ind.CommentText) == "" {
		return false
	}
	if ind.IncludeInTrainerSummary != nil {
		return *ind.IncludeInTrainerSummary
	}
	return ind.Growth
}
