package summary

import (
	"strings"
	"testing"
)

func TestComposeEmailBody_EmptyInputs(t *testing.T) {
	rows := []Row{{SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", TeacherName: "Mai", Status: RowStatusNone}}
	if got := ComposeEmailBody("Vivian", "11.2025", nil); got != "" {
		t.Errorf("expected empty string for nil rows, got %q", got)
	}
	if got := ComposeEmailBody("Vivian", "11.2025", []Row{}); got != "" {
		t.Errorf("expected empty string for empty rows, got %q", got)
	}
	if got := ComposeEmailBody("", "11.2025", rows); got != "" {
		t.Errorf("expected empty string when AM unselected, got %q", got)
	}
	if got := ComposeEmailBody("Vivian", "", rows); got != "" {
		t.Errorf("expected empty string when month unselected, got %q", got)
	}
}

func TestComposeEmailBody_Layout(t *testing.T) {
	rows := []Row{
		{SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", TeacherName: "Mai", Status: RowStatusGreen, NextSteps: "- [05.11.2025] 3.1: Needs more wait time"},
		{SchoolName: "VSK Sunshine", Campus: "Mỹ Đình", TeacherName: "Ngọc", Status: RowStatusRed},
	}
	body := ComposeEmailBody("Vivian", "11.2025", rows)

	if !strings.HasPrefix(body, "Hi Vivian,\n") {
		t.Errorf("missing greeting, body starts with %q", body[:20])
	}
	if !strings.Contains(body, "November 2025") {
		t.Error("intro should name the month")
	}
	if !strings.Contains(body, "School | Campus | Teacher | Status | Next steps\n--- | --- | --- | --- | ---\n") {
		t.Error("missing table header with separator line")
	}
	if !strings.Contains(body, "VSK Sunshine | Cổ Nhuế | Mai | Green | - [05.11.2025] 3.1: Needs more wait time\n") {
		t.Errorf("missing green row, body:\n%s", body)
	}
	if !strings.Contains(body, "VSK Sunshine | Mỹ Đình | Ngọc | Red | -\n") {
		t.Errorf("missing red row with empty next steps, body:\n%s", body)
	}
	if !strings.Contains(body, "Best regards,") {
		t.Error("missing sign-off block")
	}
}

func TestComposeEmailBody_StatusNoneRendersDash(t *testing.T) {
	rows := []Row{{SchoolName: "S", Campus: "C", TeacherName: "T", Status: RowStatusNone, NextSteps: "x"}}
	body := ComposeEmailBody("Vivian", "11.2025", rows)
	if !strings.Contains(body, "S | C | T | - | x\n") {
		t.Errorf("status none should render as -, body:\n%s", body)
	}
}

func TestComposeEmailBody_NextStepsCollapsedAndTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	rows := []Row{{SchoolName: "S", Campus: "C", TeacherName: "T", Status: RowStatusNone, NextSteps: long}}
	body := ComposeEmailBody("Vivian", "11.2025", rows)

	line := findRowLine(t, body, "S | C | T | - | ")
	cell := strings.TrimPrefix(line, "S | C | T | - | ")
	if len([]rune(cell)) != 180 {
		t.Errorf("next steps cell has %d runes, want exactly 180", len([]rune(cell)))
	}
}

func TestComposeEmailBody_MultilineNextStepsSingleSpaced(t *testing.T) {
	rows := []Row{{SchoolName: "S", Campus: "C", TeacherName: "T", NextSteps: "- [05.11.2025] 3.1: A\n- [12.11.2025] 4.2: B"}}
	body := ComposeEmailBody("Vivian", "11.2025", rows)
	if !strings.Contains(body, "S | C | T | - | - [05.11.2025] 3.1: A - [12.11.2025] 4.2: B\n") {
		t.Errorf("newlines should collapse to single spaces, body:\n%s", body)
	}
}

func findRowLine(t *testing.T, body, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line with prefix %q in body:\n%s", prefix, body)
	return ""
}
