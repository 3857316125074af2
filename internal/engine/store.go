package engine

import (
	"cmp"
	"slices"
	"sync"

	"github.com/kode4food/sluice/pkg/api"
)

// Store holds every execution state for the life of the process. States
// are registered before their first task runs and are never evicted
type Store struct {
	mu         sync.RWMutex
	executions map[api.ExecutionID]*api.ExecutionState
}

// NewStore creates an empty execution store
func NewStore() *Store {
	return &Store{
		executions: map[api.ExecutionID]*api.ExecutionState{},
	}
}

// Put registers an execution state under its ID
func (s *Store) Put(state *api.ExecutionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions[state.ExecutionID] = state
}

// Get returns a copy of the identified execution state. Callers never
// observe in-place mutations made by a still-running flow
func (s *Store) Get(id api.ExecutionID) (*api.ExecutionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.executions[id]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// List returns copies of all execution states ordered by start time,
// with ties broken by execution ID
func (s *Store) List() []*api.ExecutionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*api.ExecutionState, 0, len(s.executions))
	for _, state := range s.executions {
		res = append(res, state.Clone())
	}
	slices.SortFunc(res, func(l, r *api.ExecutionState) int {
		if c := l.StartedAt.Compare(r.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(l.ExecutionID, r.ExecutionID)
	})
	return res
}

// Update applies fn to the identified execution state under the write
// lock. The engine performs all run-time mutations through Update so
// that concurrent readers always see a consistent state
func (s *Store) Update(id api.ExecutionID, fn func(*api.ExecutionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.executions[id]; ok {
		fn(state)
	}
}

// Len returns the number of stored executions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.executions)
}
