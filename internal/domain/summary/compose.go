// internal/domain/summary/compose.go
package summary

import (
	"fmt"
	"strings"

	"am_summary_bot/internal/domain/observation"
)

// nextStepsLimit caps a row's next-steps cell in the rendered draft.
const nextStepsLimit = 180

// ComposeEmailBody renders aggregated rows into the plain-text email draft
// the trainer pastes into their mail client. The render is deterministic:
// greeting, month intro, a pipe-delimited table, sign-off.
//
// An empty string signals "nothing to compose" (no rows, or month/AM not
// selected); callers must disable copy and mark-sent actions on it.
func ComposeEmailBody(amName, monthKey string, rows []Row) string {
	if amName == "" || monthKey == "" || len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", amName)
	fmt.Fprintf(&b, "Here is the teacher observation summary for %s.\n\n", observation.MonthLabel(monthKey))
	b.WriteString("School | Campus | Teacher | Status | Next steps\n")
	b.WriteString("--- | --- | --- | --- | ---\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			r.SchoolName, r.Campus, r.TeacherName, renderStatus(r.Status), renderNextSteps(r.NextSteps))
	}
	b.WriteString("\nPlease let me know if you would like the full observation notes for any teacher.\n")
	b.WriteString("\nBest regards,\nTeacher Training Team\n")
	return b.String()
}

func renderStatus(s RowStatus) string {
	switch s {
	case RowStatusGreen:
		return "Green"
	case RowStatusRed:
		return "Red"
	default:
		return "-"
	}
}

// renderNextSteps collapses the accumulated lines to single-spaced text and
// truncates to exactly nextStepsLimit runes. No ellipsis is appended; the
// table cell has a hard width.
func renderNextSteps(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return "-"
	}
	runes := []rune(collapsed)
	if len(runes) > nextStepsLimit {
		return string(runes[:nextStepsLimit])
	}
	return collapsed
}
