/*
Package sqlite provides the SQLite-backed run-history store.

PURPOSE:
  Durable store.RunStore implementation. One table, one row per run.
  In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements exist on the runs table. A duplicate
  run id maps to store.ErrDuplicateRun.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  history, err := sqlite.New("./data/runs.db")
  if err != nil {
      log.Fatal(err)
  }
  defer history.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: RunStore interface and the in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/store"
)

// Store implements store.RunStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite run store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Runs (append-only history)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		matched INTEGER NOT NULL DEFAULT 0,
		unmatched INTEGER NOT NULL DEFAULT 0,
		needs_review INTEGER NOT NULL DEFAULT 0,
		cells_filled INTEGER NOT NULL DEFAULT 0,
		anomalies INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_kind_created_at
		ON runs(kind, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save persists a run. Append-only.
func (s *Store) Save(ctx context.Context, run store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO runs
		(id, kind, matched, unmatched, needs_review, cells_filled, anomalies, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		string(run.Kind),
		run.Counters.Matched,
		run.Counters.Unmatched,
		run.Counters.NeedsReview,
		run.Counters.CellsFilled,
		run.Counters.Anomalies,
		run.Message,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrDuplicateRun
		}
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRuns + ` WHERE id = ?`

	runs, err := s.queryRuns(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, store.ErrRunNotFound
	}
	return &runs[0], nil
}

// List returns up to limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRuns + `
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	return s.queryRuns(ctx, query, limit)
}

// ListByKind returns up to limit runs of one kind, newest first.
func (s *Store) ListByKind(ctx context.Context, kind store.Kind, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRuns + `
		WHERE kind = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	return s.queryRuns(ctx, query, string(kind), limit)
}

const selectRuns = `
	SELECT id, kind, matched, unmatched, needs_review, cells_filled, anomalies, message, created_at
	FROM runs`

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			run       store.Run
			kind      string
			createdAt string
		)
		err := rows.Scan(
			&run.ID,
			&kind,
			&run.Counters.Matched,
			&run.Counters.Unmatched,
			&run.Counters.NeedsReview,
			&run.Counters.CellsFilled,
			&run.Counters.Anomalies,
			&run.Message,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Kind = store.Kind(kind)
		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp %q: %w", createdAt, err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

var _ store.RunStore = (*Store)(nil)
