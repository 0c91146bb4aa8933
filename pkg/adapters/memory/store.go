package memory

import (
	"context"
	"sync"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.PendingRun
	mu   sync.RWMutex
}

// NewStore creates a new in-memory run store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.PendingRun),
	}
}

// Save persists the run in memory. Slices are copied so the caller keeps no
// handle into stored state.
func (s *Store) Save(ctx context.Context, run domain.PendingRun) error {
	stored := copyRun(run)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[stored.RunID] = stored
	return nil
}

// Load retrieves a run. Returns a copy so callers can't mutate stored state.
func (s *Store) Load(ctx context.Context, runID string) (domain.PendingRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[runID]
	if !ok {
		return domain.PendingRun{}, domain.ErrRunNotFound
	}
	return copyRun(run), nil
}

// Delete removes the run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns the IDs of pending runs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func copyRun(run domain.PendingRun) domain.PendingRun {
	out := run

	if run.Answers != nil {
		out.Answers = make(map[string]string, len(run.Answers))
		for k, v := range run.Answers {
			out.Answers[k] = v
		}
	}
	if run.Questions != nil {
		out.Questions = make([]domain.ClarificationQuestion, len(run.Questions))
		copy(out.Questions, run.Questions)
	}
	return out
}
