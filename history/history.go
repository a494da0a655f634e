// Package history records completed scrape runs in a local SQLite database.
// It is an optional audit trail; nothing in extraction depends on it.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vectorwade/newsgrab/report"
)

// Store persists run summaries and their extracted rows.
type Store struct {
	db *sql.DB
}

// Run is one recorded scrape run.
type Run struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	RowCount   int
}

// Open opens (or creates) the history database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		row_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rows (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		link TEXT NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a run summary and its rows in one transaction.
func (s *Store) RecordRun(run Run, rows []report.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, started_at, finished_at, row_count) VALUES (?, ?, ?, ?)",
		run.RunID.String(),
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.RowCount,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, row := range rows {
		_, err = tx.Exec(
			"INSERT INTO rows (run_id, position, category, title, summary, link) VALUES (?, ?, ?, ?, ?, ?)",
			run.RunID.String(), i, row.Category, row.Title, row.Summary, row.Link,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns all recorded runs, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT run_id, started_at, finished_at, row_count FROM runs ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                  Run
			id, started, finished string
		)
		if err := rows.Scan(&id, &started, &finished, &run.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.RunID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run ID: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time: %w", err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, finished)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finish time: %w", err)
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

// RunRows returns the rows recorded for a run, in extraction order.
func (s *Store) RunRows(runID uuid.UUID) ([]report.Row, error) {
	rows, err := s.db.Query(
		"SELECT category, title, summary, link FROM rows WHERE run_id = ? ORDER BY position",
		runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []report.Row
	for rows.Next() {
		var (
			row     report.Row
			summary sql.NullString
		)
		if err := rows.Scan(&row.Category, &row.Title, &summary, &row.Link); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row.Summary = summary.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return out, nil
}
