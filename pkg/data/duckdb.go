package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE SEQUENCE IF NOT EXISTS fetches_id_seq;
CREATE TABLE IF NOT EXISTS fetches (
	id          BIGINT PRIMARY KEY DEFAULT nextval('fetches_id_seq'),
	fetched_at  TIMESTAMP NOT NULL,
	outcome     VARCHAR NOT NULL,
	movie_count INTEGER NOT NULL DEFAULT 0,
	error_text  VARCHAR NOT NULL DEFAULT '',
	duration_ms BIGINT NOT NULL DEFAULT 0
);
`

// InitDuckDB opens the database at path, creating parent directories and
// the journal schema as needed.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Repository is the fetch journal.
type Repository struct {
	db *sql.DB
}

var (
	duckDB     *sql.DB
	duckDBPath string
)

// NewDuckDBRepository returns a repository on the process-wide database,
// opening it at path on first use. Asking for a different path while the
// database is open is an error.
func NewDuckDBRepository(path string) (*Repository, error) {
	if duckDB != nil && duckDBPath != path {
		return nil, fmt.Errorf("database already open at %s", duckDBPath)
	}
	if duckDB == nil {
		db, err := InitDuckDB(path)
		if err != nil {
			return nil, err
		}
		duckDB, duckDBPath = db, path
	}

	return &Repository{db: duckDB}, nil
}

// RecordFetch appends one settled fetch to the journal and fills in its ID.
func (r *Repository) RecordFetch(rec *FetchRecord) error {
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now()
	}

	err := r.db.QueryRow(
		`INSERT INTO fetches (fetched_at, outcome, movie_count, error_text, duration_ms)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		rec.FetchedAt.UTC(), string(rec.Outcome), rec.Count, rec.Error, rec.DurationMS,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// ListFetches returns the most recent journal entries, newest first.
// A limit of zero or less returns every entry.
func (r *Repository) ListFetches(limit int) ([]*FetchRecord, error) {
	query := `SELECT id, fetched_at, outcome, movie_count, error_text, duration_ms
		FROM fetches ORDER BY fetched_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fetches: %w", err)
	}
	defer rows.Close()

	var out []*FetchRecord
	for rows.Next() {
		var (
			rec     FetchRecord
			outcome string
		)
		if err := rows.Scan(&rec.ID, &rec.FetchedAt, &outcome, &rec.Count, &rec.Error, &rec.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}
		rec.Outcome = Outcome(outcome)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// CountByOutcome summarizes the journal.
func (r *Repository) CountByOutcome() (map[Outcome]int, error) {
	rows, err := r.db.Query(`SELECT outcome, COUNT(*) FROM fetches GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("failed to count fetches: %w", err)
	}
	defer rows.Close()

	counts := make(map[Outcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[Outcome(outcome)] = n
	}
	return counts, rows.Err()
}

// Close closes the database. Closing the process-wide database also
// releases it so the next NewDuckDBRepository call reopens it.
func (r *Repository) Close() error {
	if r.db == duckDB {
		duckDB, duckDBPath = nil, ""
	}
	return r.db.Close()
}
