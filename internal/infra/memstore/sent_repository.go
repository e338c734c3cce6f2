// internal/infra/memstore/sent_repository.go
package memstore

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"am_summary_bot/internal/domain/summary"
	idb "am_summary_bot/internal/infra/database"
)

// SentDocumentKey holds the single JSON document mapping
// "<amKey>::<monthKey>" strings to millisecond epoch numbers.
const SentDocumentKey = "am-summary-sent-v1"

type SentRepository struct {
	store *Store
}

func NewSentRepository(store *Store) *SentRepository {
	return &SentRepository{store: store}
}

func (r *SentRepository) load() map[string]int64 {
	raw, ok := r.store.Get(SentDocumentKey)
	if !ok {
		return map[string]int64{}
	}
	var m map[string]int64
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		// A corrupt document is treated as empty rather than fatal; the next
		// write replaces it.
		return map[string]int64{}
	}
	return m
}

func (r *SentRepository) Upsert(ctx context.Context, marker *summary.SentMarker) error {
	m := r.load()
	m[marker.AMKey+"::"+marker.MonthKey] = marker.SentAt.UnixMilli()
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	r.store.Set(SentDocumentKey, string(raw))
	return nil
}

func (r *SentRepository) Get(ctx context.Context, amKey, monthKey string) (*summary.SentMarker, error) {
	m := r.load()
	ms, ok := m[amKey+"::"+monthKey]
	if !ok {
		return nil, idb.ErrSentMarkerNotFound
	}
	return &summary.SentMarker{
		AMKey:    amKey,
		MonthKey: monthKey,
		SentAt:   time.UnixMilli(ms).UTC(),
	}, nil
}

func (r *SentRepository) List(ctx context.Context) ([]*summary.SentMarker, error) {
	m := r.load()
	markers := make([]*summary.SentMarker, 0, len(m))
	for k, ms := range m {
		parts := strings.SplitN(k, "::", 2)
		if len(parts) != 2 {
			continue
		}
		markers = append(markers, &summary.SentMarker{
			AMKey:    parts[0],
			MonthKey: parts[1],
			SentAt:   time.UnixMilli(ms).UTC(),
		})
	}
	return markers, nil
}
