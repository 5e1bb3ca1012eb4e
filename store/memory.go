package store

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-memory RunStore for tests and dry runs.
type Memory struct {
	mu   sync.RWMutex
	runs []Run
	byID map[string]int
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[string]int)}
}

// Save persists a run. Append-only.
func (m *Memory) Save(_ context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[run.ID]; ok {
		return ErrDuplicateRun
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	m.byID[run.ID] = len(m.runs)
	m.runs = append(m.runs, run)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	run := m.runs[i]
	return &run, nil
}

// List returns up to limit runs, newest saved first.
func (m *Memory) List(_ context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(limit, func(Run) bool { return true }), nil
}

// ListByKind returns up to limit runs of one kind, newest saved first.
func (m *Memory) ListByKind(_ context.Context, kind Kind, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(limit, func(r Run) bool { return r.Kind == kind }), nil
}

func (m *Memory) collect(limit int, keep func(Run) bool) []Run {
	var out []Run
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(m.runs[i]) {
			out = append(out, m.runs[i])
		}
	}
	return out
}

var _ RunStore = (*Memory)(nil)
