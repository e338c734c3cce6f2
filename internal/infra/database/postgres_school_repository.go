// internal/infra/database/postgres_school_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"am_summary_bot/internal/domain/school"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrSchoolNotFound = fmt.Errorf("school not found")
var ErrDuplicateSchool = fmt.Errorf("school with this name and campus already exists")

type PostgresSchoolRepository struct {
	db *sql.DB
}

func NewPostgresSchoolRepository(db *sql.DB) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{db: db}
}

func (r *PostgresSchoolRepository) Create(ctx context.Context, info *school.Info) error {
	query := `INSERT INTO schools (school_name, campus_name, am_name, am_email)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, info.SchoolName, info.Campus, info.AMName, info.AMEmail).Scan(&info.ID, &info.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "schools_school_campus_key") { // unique (school_name, campus_name)
			return ErrDuplicateSchool
		}
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

func (r *PostgresSchoolRepository) Delete(ctx context.Context, schoolName, campus string) error {
	query := `DELETE FROM schools WHERE school_name = $1 AND campus_name = $2`
	res, err := r.db.ExecContext(ctx, query, schoolName, campus)
	if err != nil {
		return fmt.Errorf("error deleting school: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted school rows: %w", err)
	}
	if affected == 0 {
		return ErrSchoolNotFound
	}
	return nil
}

func (r *PostgresSchoolRepository) ListAll(ctx context.Context) ([]school.Info, error) {
	query := `SELECT id, school_name, campus_name, am_name, am_email, created_at
               FROM schools ORDER BY school_name, campus_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing schools: %w", err)
	}
	defer rows.Close()

	schools := make([]school.Info, 0)
	for rows.Next() {
		var s school.Info
		if err := rows.Scan(&s.ID, &s.SchoolName, &s.Campus, &s.AMName, &s.AMEmail, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning school: %w", err)
		}
		schools = append(schools, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schools: %w", err)
	}
	return schools, nil
}
