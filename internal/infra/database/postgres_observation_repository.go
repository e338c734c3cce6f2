// internal/infra/database/postgres_observation_repository.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"am_summary_bot/internal/domain/observation"

	"github.com/sirupsen/logrus"
)

// Custom errors specific to observation repository
var ErrObservationNotFound = fmt.Errorf("observation not found")

// PostgresObservationRepository reads cached observation documents from the
// 'observations' table, where each row holds the full JSON document (meta,
// indicators, status, updatedAt) in a jsonb column.
type PostgresObservationRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

func NewPostgresObservationRepository(db *sql.DB, logger *logrus.Entry) *PostgresObservationRepository {
	return &PostgresObservationRepository{db: db, logger: logger}
}

// ListSummaries scans every stored document and projects it into a Summary.
// Documents that fail to parse or violate the expected shape are skipped with
// a warning; a bad row never aborts the scan.
func (r *PostgresObservationRepository) ListSummaries(ctx context.Context) ([]observation.Summary, error) {
	query := `SELECT id, doc FROM observations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying observations: %w", err)
	}
	defer rows.Close()

	summaries := make([]observation.Summary, 0)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("error scanning observation row: %w", err)
		}

		rec, err := decodeRecord(id, doc)
		if err != nil {
			r.logger.WithError(err).WithField("observation_id", id).Warn("Skipping malformed observation document")
			continue
		}
		summaries = append(summaries, observation.Summarize(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observation rows: %w", err)
	}
	return summaries, nil
}

// Get re-reads the full document for one observation.
func (r *PostgresObservationRepository) Get(ctx context.Context, id string) (*observation.Record, error) {
	query := `SELECT doc FROM observations WHERE id = $1`
	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrObservationNotFound
		}
		return nil, fmt.Errorf("error getting observation by ID: %w", err)
	}
	return decodeRecord(id, doc)
}

func decodeRecord(id string, doc []byte) (*observation.Record, error) {
	var rec observation.Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("error parsing observation document: %w", err)
	}
	if rec.ID == "" {
		rec.ID = id // older documents relied on the storage key for identity
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
