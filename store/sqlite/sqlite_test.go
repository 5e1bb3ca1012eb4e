/*
sqlite_test.go - Run-history round trips against :memory: SQLite
*/
package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warp/payroll-engine/store"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	// GIVEN: A run with every field set
	s := newTestStore(t)
	ctx := context.Background()

	want := store.Run{
		ID:   "c0ffee00-1111-2222-3333-444455556666",
		Kind: store.KindWeekly,
		Counters: store.Counters{
			Matched:     12,
			Unmatched:   2,
			NeedsReview: 1,
			CellsFilled: 84,
			Anomalies:   5,
		},
		Message:   "Week 08/18 – 08/24: populated Reg & OT.",
		CreatedAt: time.Date(2025, time.August, 22, 16, 30, 0, 0, time.UTC),
	}

	// WHEN: Saved and read back
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// THEN: Every field survives
	if got.Kind != want.Kind {
		t.Errorf("Kind = %q, want %q", got.Kind, want.Kind)
	}
	if got.Counters != want.Counters {
		t.Errorf("Counters = %+v, want %+v", got.Counters, want.Counters)
	}
	if got.Message != want.Message {
		t.Errorf("Message = %q, want %q", got.Message, want.Message)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestDuplicateRunID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := store.Run{ID: "run-1", Kind: store.KindDaily}
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	err := s.Save(ctx, run)
	if !errors.Is(err, store.ErrDuplicateRun) {
		t.Errorf("Second save error = %v, want ErrDuplicateRun", err)
	}
}

func TestGetUnknownRun(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrRunNotFound) {
		t.Errorf("Get error = %v, want ErrRunNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	// GIVEN: Three runs saved over three days
	s := newTestStore(t)
	ctx := context.Background()

	for i, kind := range []store.Kind{store.KindDaily, store.KindWeekly, store.KindDaily} {
		run := store.Run{
			ID:        []string{"r1", "r2", "r3"}[i],
			Kind:      kind,
			CreatedAt: time.Date(2025, time.August, 18+i, 12, 0, 0, 0, time.UTC),
		}
		if err := s.Save(ctx, run); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
	}

	// WHEN/THEN: List returns newest first and honors the limit
	all, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertIDs(t, all, "r3", "r2", "r1")

	top, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	assertIDs(t, top, "r3", "r2")

	daily, err := s.ListByKind(ctx, store.KindDaily, 10)
	if err != nil {
		t.Fatalf("ListByKind failed: %v", err)
	}
	assertIDs(t, daily, "r3", "r1")
}

func assertIDs(t *testing.T, runs []store.Run, want ...string) {
	t.Helper()
	if len(runs) != len(want) {
		t.Fatalf("Got %d runs, want %d", len(runs), len(want))
	}
	for i, w := range want {
		if runs[i].ID != w {
			t.Errorf("runs[%d].ID = %q, want %q", i, runs[i].ID, w)
		}
	}
}
