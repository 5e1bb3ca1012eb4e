/*
Package pipeline runs the engine end to end.

PURPOSE:
  One call per run flavor:

    Daily  - one day of punches onto the weekly timesheet
    Weekly - the whole week of punches onto the weekly timesheet
    Ledger - the filled week into Cash/Payroll ledgers, with bonuses,
             reimbursements and loan collection

  Each call takes in-memory tables, mutates the output tables in
  place, composes the secretary message, and records one run in the
  history store. The pipeline never reads or writes files; ingest/
  turns bytes into tables and the caller decides where filled tables
  go, under the suggested output names.

RUN RECORDS:
  Every successful run is persisted as one store.Run (uuid id, kind,
  headline counters, the message). A nil history store disables
  recording; dry-run callers use that or store.NewMemory.

IDEMPOTENCE:
  Daily and Weekly are safe to re-run on the same inputs. Ledger is
  not when a loan book is attached: allocation reduces live balances,
  so re-running against an already-updated book double-deducts. Run
  it once per pay week.
*/
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/match"
	"github.com/warp/payroll-engine/store"
)

// Runner executes engine runs against one settings snapshot.
type Runner struct {
	Settings config.Settings
	History  store.RunStore // nil disables run recording

	// Now stamps run records and output names.
	Now func() time.Time
}

func New(cfg config.Settings, history store.RunStore) *Runner {
	return &Runner{Settings: cfg, History: history, Now: time.Now}
}

// OutputName builds "<prefix><date suffix>.xlsx" per the output
// settings, e.g. "Cash_Filled_08.22.25.xlsx".
func (r *Runner) OutputName(prefix string) string {
	return prefix + r.Now().Format(r.Settings.Output.DateFormat) + ".xlsx"
}

func (r *Runner) record(ctx context.Context, kind store.Kind, c store.Counters, msg string) (store.Run, error) {
	run := store.Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Counters:  c,
		Message:   msg,
		CreatedAt: r.Now().UTC(),
	}
	if r.History == nil {
		return run, nil
	}
	if err := r.History.Save(ctx, run); err != nil {
		return store.Run{}, fmt.Errorf("record %s run: %w", kind, err)
	}
	return run, nil
}

// matchCounters folds match records into the matched / needs-review
// counter pair.
func matchCounters(records []match.Record) (matched, needsReview int) {
	for _, m := range records {
		if m.Target != "" {
			matched++
		}
		if m.NeedsReview {
			needsReview++
		}
	}
	return matched, needsReview
}
