// Package history persists a journal of runs and per-move outcomes in
// SQLite so `mvvideos history` can show what past invocations did.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// timeLayout keeps a fixed-width fraction so ORDER BY on the TEXT column
// matches chronological order. RFC3339Nano drops trailing zeros, which breaks
// lexicographic sorting for runs within the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded pipeline invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	DryRun      bool
	Sources     []string
	Destination string
	Planned     int
	Moved       int
	Failed      int
}

// MoveRecord is the persisted outcome of one plan entry.
type MoveRecord struct {
	RunID       string
	Source      string
	Destination string
	Status      string
	Error       string
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start fresh)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// RecordRun inserts a run and its move outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, moves []MoveRecord) error {
	sources, err := json.Marshal(run.Sources)
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, dry_run, sources, destination, planned, moved, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		boolToInt(run.DryRun),
		string(sources),
		run.Destination,
		run.Planned,
		run.Moved,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, move := range moves {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, source, destination, status, error)
             VALUES (?, ?, ?, ?, ?)`,
			run.ID, move.Source, move.Destination, move.Status, nullableString(move.Error),
		)
		if err != nil {
			return fmt.Errorf("insert move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. failedOnly restricts the
// result to runs with at least one failed move.
func (s *Store) RecentRuns(ctx context.Context, limit int, failedOnly bool) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, started_at, finished_at, dry_run, sources, destination, planned, moved, failed
              FROM runs`
	if failedOnly {
		query += " WHERE failed > 0"
	}
	query += " ORDER BY started_at DESC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
			dryRun            int
			sources           string
		)
		if err := rows.Scan(&run.ID, &started, &finished, &dryRun, &sources, &run.Destination,
			&run.Planned, &run.Moved, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &run.Sources); err != nil {
			return nil, fmt.Errorf("decode sources: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Moves returns the recorded outcomes for a run, in insertion order.
func (s *Store) Moves(ctx context.Context, runID string) ([]MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, destination, status, COALESCE(error, '')
         FROM moves WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var move MoveRecord
		if err := rows.Scan(&move.RunID, &move.Source, &move.Destination, &move.Status, &move.Error); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
