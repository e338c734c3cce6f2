// internal/domain/summary/sent.go
package summary

import (
	"context"
	"time"
)

// SentMarker records that the summary for an (AM, month) pair has been
// communicated. Written only by explicit user action; never auto-expired;
// repeated marking overwrites the timestamp, last write wins.
type SentMarker struct {
	AMKey    string // "<amEmail>|<amName>"
	MonthKey string // "MM.YYYY"
	SentAt   time.Time
}

// SentRepository persists sent markers in a flat key-value fashion.
type SentRepository interface {
	// Upsert writes the marker, replacing any existing timestamp for the
	// same (AMKey, MonthKey).
	Upsert(ctx context.Context, marker *SentMarker) error
	Get(ctx context.Context, amKey, monthKey string) (*SentMarker, error)
	List(ctx context.Context) ([]*SentMarker, error)
}
