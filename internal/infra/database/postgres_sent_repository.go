// internal/infra/database/postgres_sent_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"am_summary_bot/internal/domain/summary"
)

var ErrSentMarkerNotFound = fmt.Errorf("sent marker not found")

// PostgresSentRepository stores one timestamp per (am_key, month_key) pair in
// the 'am_summary_sent_markers' table. Upsert is last-write-wins; no history
// is kept.
type PostgresSentRepository struct {
	db *sql.DB
}

func NewPostgresSentRepository(db *sql.DB) *PostgresSentRepository {
	return &PostgresSentRepository{db: db}
}

func (r *PostgresSentRepository) Upsert(ctx context.Context, marker *summary.SentMarker) error {
	query := `INSERT INTO am_summary_sent_markers (am_key, month_key, sent_at)
               VALUES ($1, $2, $3)
               ON CONFLICT (am_key, month_key) DO UPDATE SET sent_at = EXCLUDED.sent_at`
	_, err := r.db.ExecContext(ctx, query, marker.AMKey, marker.MonthKey, marker.SentAt)
	if err != nil {
		return fmt.Errorf("error upserting sent marker: %w", err)
	}
	return nil
}

func (r *PostgresSentRepository) Get(ctx context.Context, amKey, monthKey string) (*summary.SentMarker, error) {
	query := `SELECT am_key, month_key, sent_at FROM am_summary_sent_markers
               WHERE am_key = $1 AND month_key = $2`
	m := summary.SentMarker{}
	err := r.db.QueryRowContext(ctx, query, amKey, monthKey).Scan(&m.AMKey, &m.MonthKey, &m.SentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSentMarkerNotFound
		}
		return nil, fmt.Errorf("error getting sent marker: %w", err)
	}
	return &m, nil
}

func (r *PostgresSentRepository) List(ctx context.Context) ([]*summary.SentMarker, error) {
	query := `SELECT am_key, month_key, sent_at FROM am_summary_sent_markers
               ORDER BY month_key, am_key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing sent markers: %w", err)
	}
	defer rows.Close()

	markers := make([]*summary.SentMarker, 0)
	for rows.Next() {
		m := summary.SentMarker{}
		if err := rows.Scan(&m.AMKey, &m.MonthKey, &m.SentAt); err != nil {
			return nil, fmt.Errorf("error scanning sent marker: %w", err)
		}
		markers = append(markers, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sent markers: %w", err)
	}
	return markers, nil
}
