package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// StubProvider is a test double for providers.MatchProvider.
// AddMatch and UpdateMatch echo their input unless Echo is set.
type StubProvider struct {
	Matches   []matches.Match
	FetchErr  error
	MutateErr error
	Echo      *matches.Match

	// Gate, when set, holds FetchMatches until it is closed or ctx ends.
	Gate chan struct{}
	// Started is closed when the first FetchMatches begins.
	Started chan struct{}

	FetchCalls  atomic.Int32
	AddCalls    atomic.Int32
	UpdateCalls atomic.Int32
	DeleteCalls atomic.Int32

	startOnce sync.Once
}

// FetchMatches returns configured matches and error while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	s.FetchCalls.Add(1)
	if s.Started != nil {
		s.startOnce.Do(func() { close(s.Started) })
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return matches.CloneAll(s.Matches), nil
}

// AddMatch echoes the record or returns MutateErr.
func (s *StubProvider) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	s.AddCalls.Add(1)
	return s.echo(m)
}

// UpdateMatch echoes the record or returns MutateErr.
func (s *StubProvider) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	s.UpdateCalls.Add(1)
	return s.echo(m)
}

// DeleteMatch returns MutateErr.
func (s *StubProvider) DeleteMatch(ctx context.Context, id string) error {
	s.DeleteCalls.Add(1)
	return s.MutateErr
}

func (s *StubProvider) echo(m matches.Match) (matches.Match, error) {
	if s.MutateErr != nil {
		return matches.Match{}, s.MutateErr
	}
	if s.Echo != nil {
		return s.Echo.Clone(), nil
	}
	return m.Clone(), nil
}

// StubLocalStore is a test double for local.Store that records every save.
type StubLocalStore struct {
	mu      sync.Mutex
	Matches []matches.Match
	SaveErr error
	saves   [][]matches.Match
	loads   int
}

// Load returns a copy of Matches, never nil.
func (s *StubLocalStore) Load(ctx context.Context) []matches.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return matches.CloneAll(s.Matches)
}

// Save records list and, unless SaveErr is set, stores it.
func (s *StubLocalStore) Save(ctx context.Context, list []matches.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, matches.CloneAll(list))
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Matches = matches.CloneAll(list)
	return nil
}

// Saves returns a copy of every list passed to Save, in order.
func (s *StubLocalStore) Saves() [][]matches.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]matches.Match, len(s.saves))
	for i, list := range s.saves {
		out[i] = matches.CloneAll(list)
	}
	return out
}

// Loads returns how many times Load ran.
func (s *StubLocalStore) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}
