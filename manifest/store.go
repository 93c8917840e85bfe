// Package manifest records what a capture run produced: one row per run and
// one row per table file written, in a SQLite database next to the output
// files. It is bookkeeping for downstream tooling, not a resume mechanism —
// every run captures the full dataset again.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Schema for the manifest tables. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	table_id TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER,
	outcome TEXT
);
CREATE TABLE IF NOT EXISTS files (
	run_id TEXT NOT NULL REFERENCES runs(id),
	name TEXT NOT NULL,
	rows INTEGER NOT NULL,
	columns INTEGER NOT NULL,
	bytes INTEGER NOT NULL,
	written_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_run ON files(run_id);
`

// FileRecord is one persisted table file of a run.
type FileRecord struct {
	Name    string
	Rows    int
	Columns int
	Bytes   int
}

// Store persists capture runs to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the manifest database at path and applies
// the schema. Parent directories are created.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("apply manifest schema: %w", err)
	}

	return &Store{db: db}, nil
}

// BeginRun inserts a new run row and returns its identifier.
func (s *Store) BeginRun(tableID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, table_id, started_at) VALUES (?, ?, ?)`,
		id, tableID, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// FinishRun stamps the run with its outcome ("ok", "metadata_failed", ...).
func (s *Store) FinishRun(runID, outcome string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, outcome = ? WHERE id = ?`,
		time.Now().UnixMilli(), outcome, runID,
	)

	return err
}

// RecordFile inserts one file row for the run.
func (s *Store) RecordFile(runID, name string, rows, columns, bytes int) error {
	_, err := s.db.Exec(
		`INSERT INTO files (run_id, name, rows, columns, bytes, written_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, name, rows, columns, bytes, time.Now().UnixMilli(),
	)

	return err
}

// Files returns the file records of a run in insertion order.
func (s *Store) Files(runID string) ([]FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT name, rows, columns, bytes FROM files WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err := rows.Scan(&rec.Name, &rec.Rows, &rec.Columns, &rec.Bytes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// AllFiles returns every file record in the database in insertion order,
// across runs.
func (s *Store) AllFiles() ([]FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT name, rows, columns, bytes FROM files ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err := rows.Scan(&rec.Name, &rec.Rows, &rec.Columns, &rec.Bytes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
