package local

import (
	"context"
	"sync"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// MemoryStore keeps a thread-safe copy of the match list in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	list []matches.Match
}

// NewMemoryStore constructs a MemoryStore seeded with a copy of initial.
func NewMemoryStore(initial []matches.Match) *MemoryStore {
	return &MemoryStore{list: matches.CloneAll(initial)}
}

// Load returns a copy of the stored list.
func (s *MemoryStore) Load(ctx context.Context) []matches.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matches.CloneAll(s.list)
}

// Save replaces the stored list with a copy of list.
func (s *MemoryStore) Save(ctx context.Context, list []matches.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = matches.CloneAll(list)
	return nil
}
