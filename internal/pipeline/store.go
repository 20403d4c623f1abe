package pipeline

import "sync"

// RunStore tracks runs by id. It is injected into the orchestrator rather
// than living in package state; each run is written by exactly one worker
// while external callers poll snapshots.
type RunStore interface {
	Create(run *Run)
	// Get returns a snapshot of the run, safe to read while the worker
	// keeps mutating the stored record.
	Get(id string) (Run, bool)
	Update(id string, mutate func(*Run))
}

type memoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an in-memory RunStore. Runs are retained for the
// process lifetime; eviction is the embedding application's concern.
func NewMemoryStore() RunStore {
	return &memoryStore{runs: make(map[string]*Run)}
}

func (s *memoryStore) Create(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *memoryStore) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return *run, true
}

func (s *memoryStore) Update(id string, mutate func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run, ok := s.runs[id]; ok {
		mutate(run)
	}
}
