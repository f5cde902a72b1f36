// Package sqlite persists a diagnostic audit log of reconciler operations.
// It is never read back by the reconciler to make decisions: all matching
// and flap-protection state lives in issue bodies and labels. The log exists
// so an operator can inspect what a run did after the fact.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vibecheck-dev/vibecheck/internal/usecase/reconcile"
)

// Store records emitted reconciler operations to a local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (and initializes, if necessary) the audit log at dbPath.
// Use ":memory:" for an ephemeral in-memory database, useful in tests.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		repository TEXT NOT NULL,
		run_number INTEGER NOT NULL,
		created INTEGER NOT NULL DEFAULT 0,
		updated INTEGER NOT NULL DEFAULT 0,
		closed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS operations (
		operation_id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		issue_number INTEGER NOT NULL DEFAULT 0,
		fingerprint TEXT,
		title TEXT,
		succeeded INTEGER NOT NULL,
		error_message TEXT,
		timestamp INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_operations_run ON operations(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RunSummary describes one reconciliation pass for the audit log.
type RunSummary struct {
	RunID      string
	Timestamp  time.Time
	Repository string
	RunNumber  int
	Stats      reconcile.Stats
}

// RecordRun stores a run header row.
func (s *Store) RecordRun(ctx context.Context, run RunSummary) error {
	query := `
		INSERT INTO runs (run_id, timestamp, repository, run_number, created, updated, closed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.Timestamp.Unix(),
		run.Repository,
		run.RunNumber,
		run.Stats.Created,
		run.Stats.Updated,
		run.Stats.Closed,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// OperationRecord is a single logged operation, with its outcome.
type OperationRecord struct {
	RunID        string
	Kind         string
	IssueNumber  int
	Fingerprint  string
	Title        string
	Succeeded    bool
	ErrorMessage string
	Timestamp    time.Time
}

// RecordOperations persists a batch of executed operations in one transaction.
func (s *Store) RecordOperations(ctx context.Context, records []OperationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO operations (run_id, kind, issue_number, fingerprint, title, succeeded, error_message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.RunID,
			rec.Kind,
			rec.IssueNumber,
			rec.Fingerprint,
			rec.Title,
			boolToInt(rec.Succeeded),
			rec.ErrorMessage,
			rec.Timestamp.Unix(),
		); err != nil {
			return fmt.Errorf("failed to insert operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListOperationsByRun retrieves every logged operation for a run, oldest first.
func (s *Store) ListOperationsByRun(ctx context.Context, runID string) ([]OperationRecord, error) {
	query := `
		SELECT run_id, kind, issue_number, fingerprint, title, succeeded, error_message, timestamp
		FROM operations
		WHERE run_id = ?
		ORDER BY operation_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var records []OperationRecord
	for rows.Next() {
		var rec OperationRecord
		var succeeded int
		var timestamp int64
		var fingerprint, title, errMessage sql.NullString

		if err := rows.Scan(
			&rec.RunID,
			&rec.Kind,
			&rec.IssueNumber,
			&fingerprint,
			&title,
			&succeeded,
			&errMessage,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}

		rec.Fingerprint = fingerprint.String
		rec.Title = title.String
		rec.ErrorMessage = errMessage.String
		rec.Succeeded = succeeded == 1
		rec.Timestamp = time.Unix(timestamp, 0)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operations: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
