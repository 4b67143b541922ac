package archive

import (
	"fmt"
	"slices"
	"sync"

	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

// MemoryStore implements Store in memory (not persistent)
type MemoryStore struct {
	runs    map[string]Run
	rosters map[string][]fixture.Student
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory archive
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]Run),
		rosters: make(map[string][]fixture.Student),
	}
}

func (m *MemoryStore) SaveRun(run *Run, roster []fixture.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external modifications
	stored := *run
	stored.Files = slices.Clone(run.Files)
	m.runs[run.ID] = stored
	m.rosters[run.ID] = slices.Clone(roster)

	return nil
}

func (m *MemoryStore) GetRun(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	run.Files = slices.Clone(run.Files)
	return &run, nil
}

func (m *MemoryStore) ListRuns() ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		run.Files = slices.Clone(run.Files)
		runs = append(runs, &run)
	}
	sortNewestFirst(runs)
	return runs, nil
}

func (m *MemoryStore) LoadRoster(id string) ([]fixture.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	roster, exists := m.rosters[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return slices.Clone(roster), nil
}

func (m *MemoryStore) DeleteRun(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[id]; !exists {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	delete(m.runs, id)
	delete(m.rosters, id)
	return nil
}

// Close is a no-op for the memory store
func (m *MemoryStore) Close() error {
	return nil
}
