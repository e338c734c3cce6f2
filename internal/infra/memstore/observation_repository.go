// internal/infra/memstore/observation_repository.go
package memstore

import (
	"context"
	"encoding/json"
	"fmt"

	"am_summary_bot/internal/domain/observation"
	idb "am_summary_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// ObservationKeyPrefix is the namespace under which observation documents are
// stored, one JSON document per key.
const ObservationKeyPrefix = "obs-v1-"

type ObservationRepository struct {
	store  *Store
	logger *logrus.Entry
}

func NewObservationRepository(store *Store, logger *logrus.Entry) *ObservationRepository {
	return &ObservationRepository{store: store, logger: logger}
}

// Put stores a record under its prefixed key. Used for seeding and by tests.
func (r *ObservationRepository) Put(rec *observation.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("error encoding observation %s: %w", rec.ID, err)
	}
	r.store.Set(ObservationKeyPrefix+rec.ID, string(raw))
	return nil
}

// ListSummaries scans every key under the prefix and yields one Summary per
// well-formed document. Malformed entries are skipped with a warning.
func (r *ObservationRepository) ListSummaries(ctx context.Context) ([]observation.Summary, error) {
	summaries := make([]observation.Summary, 0)
	for _, key := range r.store.Keys(ObservationKeyPrefix) {
		raw, ok := r.store.Get(key)
		if !ok {
			continue
		}
		rec, err := decode(key, raw)
		if err != nil {
			r.logger.WithError(err).WithField("key", key).Warn("Skipping malformed observation document")
			continue
		}
		summaries = append(summaries, observation.Summarize(rec))
	}
	return summaries, nil
}

func (r *ObservationRepository) Get(ctx context.Context, id string) (*observation.Record, error) {
	raw, ok := r.store.Get(ObservationKeyPrefix + id)
	if !ok {
		return nil, idb.ErrObservationNotFound
	}
	return decode(ObservationKeyPrefix+id, raw)
}

func decode(key, raw string) (*observation.Record, error) {
	var rec observation.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("error parsing observation document %s: %w", key, err)
	}
	if rec.ID == "" {
		rec.ID = key[len(ObservationKeyPrefix):]
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
