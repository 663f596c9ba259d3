package recorder

import (
	"context"
	"errors"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        []string
	transitions map[string][]Transition
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = nil
	s.transitions = make(map[string][]Transition)
	return nil
}

func (s *MemoryStore) Append(_ context.Context, ts ...Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	for _, t := range ts {
		if _, ok := s.transitions[t.RunID]; !ok {
			s.runs = append(s.runs, t.RunID)
		}
		s.transitions[t.RunID] = append(s.transitions[t.RunID], t)
	}
	return nil
}

func (s *MemoryStore) Transitions(_ context.Context, runID string) ([]Transition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}
	return slices.Clone(s.transitions[runID]), nil
}

func (s *MemoryStore) Runs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}
	return slices.Clone(s.runs), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
