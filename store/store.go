/*
Package store persists run history.

PURPOSE:
  Every engine run (daily fill, weekly fill, payday ledger fill) leaves
  one record behind: what kind of run it was, the headline counters,
  and the secretary message that went out. The history answers "did
  the Tuesday run happen, and what did it say" without digging
  through spreadsheets.

APPEND-ONLY CONTRACT:
  Runs are never updated or deleted. A re-run gets a fresh id; the
  history keeps both. Save rejects an id it has already seen.

IMPLEMENTATIONS:
  - Memory (this package): for tests and dry runs
  - store/sqlite: durable history on disk
*/
package store

import (
	"context"
	"errors"
	"time"
)

// Kind is the run flavor.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
	KindLedger Kind = "ledger"
)

// Counters are the headline figures of one run.
type Counters struct {
	Matched     int
	Unmatched   int
	NeedsReview int
	CellsFilled int
	Anomalies   int
}

// Run is one persisted engine run.
type Run struct {
	ID        string
	Kind      Kind
	Counters  Counters
	Message   string
	CreatedAt time.Time
}

var (
	// ErrDuplicateRun is returned by Save when the run id exists.
	ErrDuplicateRun = errors.New("run id already exists")

	// ErrRunNotFound is returned by Get for an unknown run id.
	ErrRunNotFound = errors.New("run not found")
)

// RunStore persists run records, newest first on listing.
type RunStore interface {
	// Save persists a run. Returns ErrDuplicateRun if the id exists.
	Save(ctx context.Context, run Run) error

	// Get returns the run with the given id.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)

	// ListByKind returns up to limit runs of one kind, newest first.
	ListByKind(ctx context.Context, kind Kind, limit int) ([]Run, error)
}
