// internal/domain/observation/observation.go
package observation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SupportType is the kind of session during which the observation was taken.
type SupportType string

const (
	SupportTraining SupportType = "Training"
	SupportLVA      SupportType = "LVA"
	SupportVisit    SupportType = "Visit"
)

// Status tells whether the trainer has finalized the observation.
type Status string

const (
	StatusDraft Status = "draft"
	StatusSaved Status = "saved"
)

// StatusColor is the derived at-a-glance tag for an observation.
type StatusColor string

const (
	ColorGood   StatusColor = "good"
	ColorGrowth StatusColor = "growth"
	ColorMixed  StatusColor = "mixed"
)

// Meta is the header block of a cached observation document.
type Meta struct {
	TeacherName string      `json:"teacherName"`
	SchoolName  string      `json:"schoolName"`
	Campus      string      `json:"campus"`
	Unit        string      `json:"unit"`
	Lesson      string      `json:"lesson"`
	SupportType SupportType `json:"supportType"`
	Date        string      `json:"date"` // "YYYY-MM-DD"
}

// Indicator is one gradable criterion inside an observation.
// IncludeInTrainerSummary is a pointer so legacy documents written before the
// flag existed can be told apart from documents where it was explicitly unset.
type Indicator struct {
	Number                  string            `json:"number"`
	CommentText             string            `json:"commentText"`
	Good                    bool              `json:"good"`
	Growth                  bool              `json:"growth"`
	IncludeInTrainerSummary *bool             `json:"includeInTrainerSummary,omitempty"`
	Strokes                 []json.RawMessage `json:"strokes,omitempty"`
}

// Record is the full cached observation document as stored under the
// "obs-v1-" key prefix.
type Record struct {
	ID         string      `json:"id"`
	Meta       Meta        `json:"meta"`
	Indicators []Indicator `json:"indicators"`
	Status     Status      `json:"status"`
	UpdatedAt  int64       `json:"updatedAt"` // ms epoch, 0 when never saved
}

// Validate rejects documents that parsed as JSON but do not have the minimum
// shape the dashboard relies on. Such documents are skipped by readers.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("observation document has no id")
	}
	if r.Meta.TeacherName == "" {
		return fmt.Errorf("observation %s has no teacher name", r.ID)
	}
	return nil
}

// Summary is the lightweight read-only projection of a Record used by list
// views and the monthly aggregation. It is recomputed on every load and never
// mutated in place.
type Summary struct {
	ID          string
	TeacherName string
	SchoolName  string
	Campus      string
	Unit        string
	Lesson      string
	SupportType SupportType
	RawDate     *time.Time // nil when the date could not be resolved
	Status      Status
	Progress        int
	TotalIndicators int
	StatusColor     StatusColor
}

// Summarize derives a Summary from a full Record.
//
// Progress counts indicators carrying any mark, comment or freehand ink.
// The status color is "growth" when only growth marks exist, "good" when only
// good marks exist, and "mixed" otherwise (including unmarked observations).
// The date comes from meta.date, falling back to updatedAt for old records.
func Summarize(rec *Record) Summary {
	var good, growth, progress int
	for _, ind := range rec.Indicators {
		hasMark := ind.Good || ind.Growth
		hasComment := strings.TrimSpace(ind.CommentText) != ""
		hasInk := len(ind.Strokes) > 0
		if hasMark || hasComment || hasInk {
			progress++
		}
		if ind.Good {
			good++
		}
		if ind.Growth {
			growth++
		}
	}

	color := ColorMixed
	if growth > 0 && good == 0 {
		color = ColorGrowth
	} else if good > 0 && growth == 0 {
		color = ColorGood
	}

	var rawDate *time.Time
	if ts, ok := ParseObservationDate(rec.Meta.Date); ok {
		rawDate = &ts
	} else if rec.UpdatedAt > 0 {
		ts := time.UnixMilli(rec.UpdatedAt).UTC()
		rawDate = &ts
	}

	status := rec.Status
	if status == "" {
		status = StatusDraft
	}

	return Summary{
		ID:              rec.ID,
		TeacherName:     rec.Meta.TeacherName,
		SchoolName:      rec.Meta.SchoolName,
		Campus:          rec.Meta.Campus,
		Unit:            rec.Meta.Unit,
		Lesson:          rec.Meta.Lesson,
		SupportType:     rec.Meta.SupportType,
		RawDate:         rawDate,
		Status:          status,
		Progress:        progress,
		TotalIndicators: len(rec.Indicators),
		StatusColor:     color,
	}
}
