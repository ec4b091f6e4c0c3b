// Package matchstore keeps the published match list in sync with a remote
// provider and a local fallback copy.
package matchstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/local"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/metrics"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

// Store is a read-through, write-through cache of matches.
// The lock guards state only and is never held across a provider or local store call.
type Store struct {
	remote providers.MatchProvider
	local  local.Store

	logger      *slog.Logger
	metrics     *metrics.Recorder
	mirrorLocal bool
	now         func() time.Time

	mu    sync.RWMutex
	state State

	// notifyMu orders commits with their delivery so subscribers see
	// changes in commit order. Acquired before mu.
	notifyMu  sync.Mutex
	subMu     sync.Mutex
	subs      map[int]func(State)
	nextSubID int

	done     chan struct{}
	doneOnce sync.Once
}

// New constructs a Store without loading anything. Most callers want Open.
func New(remote providers.MatchProvider, store local.Store, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		local:  store,
		now:    time.Now,
		state: State{
			Matches:        []matches.Match{},
			IsAPIAvailable: true,
		},
		subs: make(map[int]func(State)),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.local == nil {
		s.local = local.NewMemoryStore(nil)
	}
	return s
}

// Open constructs a Store, publishes the local copy immediately and fetches
// from the remote provider in the background. Done closes when that fetch ends.
func Open(ctx context.Context, remote providers.MatchProvider, store local.Store, opts ...Option) *Store {
	s := New(remote, store, opts...)
	start := s.now()
	s.beginLoad(ctx)
	go func() {
		defer s.markDone()
		s.finishLoad(ctx, start)
	}()
	return s
}

// Done is closed once the load started by Open has finished.
// For a Store built with New it closes after the first Load.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Load runs a full load synchronously. It is the only way back to an available API.
// Failures are logged and reflected in the published state, never returned.
func (s *Store) Load(ctx context.Context) {
	start := s.now()
	s.beginLoad(ctx)
	s.finishLoad(ctx, start)
	s.markDone()
}

func (s *Store) markDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *Store) beginLoad(ctx context.Context) {
	s.update(func(st *State) {
		st.IsLoading = true
	})

	saved := s.local.Load(ctx)
	s.update(func(st *State) {
		st.Matches = matches.CloneAll(saved)
	})
}

func (s *Store) finishLoad(ctx context.Context, start time.Time) {
	logger := s.log(ctx)
	source := metrics.SourceLocal
	defer func() {
		s.update(func(st *State) {
			st.IsLoading = false
		})
		s.metrics.RecordStoreLoad(source, s.now().Sub(start))
	}()

	fetched, err := s.fetch(ctx)
	if err != nil || len(fetched) == 0 {
		if err == nil {
			err = errEmptyRemote
		}
		logging.Warn(logger, "remote load failed; serving saved matches",
			slog.Any("err", err),
			slog.String(logging.FieldSource, metrics.SourceLocal),
		)
		s.degrade()
		return
	}

	source = metrics.SourceRemote
	published := matches.CloneAll(fetched)
	changed := false
	s.update(func(st *State) {
		changed = !st.IsAPIAvailable
		st.Matches = published
		st.IsAPIAvailable = true
		st.Error = ""
	})
	if changed {
		s.metrics.RecordAvailabilityChange(true)
	}
	logging.Info(logger, "remote load succeeded",
		slog.Int(logging.FieldCount, len(published)),
		slog.String(logging.FieldSource, metrics.SourceRemote),
	)
	s.mirror(ctx, published)
}

var errEmptyRemote = errors.New("remote returned no matches")

func (s *Store) fetch(ctx context.Context) ([]matches.Match, error) {
	if s.remote == nil {
		return nil, providers.ErrProviderUnavailable
	}
	return s.remote.FetchMatches(ctx)
}

// Add creates m remotely and appends the returned record.
func (s *Store) Add(ctx context.Context, m matches.Match) (matches.Match, error) {
	if s.remote == nil {
		return matches.Match{}, s.mutationFailed(ctx, providers.OpAdd, m.ID, providers.ErrProviderUnavailable)
	}
	created, err := s.remote.AddMatch(ctx, m)
	if err != nil {
		return matches.Match{}, s.mutationFailed(ctx, providers.OpAdd, m.ID, err)
	}

	var snapshot []matches.Match
	s.update(func(st *State) {
		next := matches.CloneAll(st.Matches)
		if idx := matches.IndexOf(next, created.ID); idx >= 0 {
			next[idx] = created.Clone()
		} else {
			next = append(next, created.Clone())
		}
		st.Matches = next
		s.reassertAdvisory(st)
		snapshot = next
	})
	s.mutationSucceeded(ctx, providers.OpAdd, created.ID, snapshot)
	return created.Clone(), nil
}

// Update replaces the record sharing the returned record's id.
func (s *Store) Update(ctx context.Context, m matches.Match) (matches.Match, error) {
	if s.remote == nil {
		return matches.Match{}, s.mutationFailed(ctx, providers.OpUpdate, m.ID, providers.ErrProviderUnavailable)
	}
	updated, err := s.remote.UpdateMatch(ctx, m)
	if err != nil {
		return matches.Match{}, s.mutationFailed(ctx, providers.OpUpdate, m.ID, err)
	}

	var snapshot []matches.Match
	s.update(func(st *State) {
		next := matches.CloneAll(st.Matches)
		for i := range next {
			if next[i].ID == updated.ID {
				next[i] = updated.Clone()
			}
		}
		st.Matches = next
		s.reassertAdvisory(st)
		snapshot = next
	})
	s.mutationSucceeded(ctx, providers.OpUpdate, updated.ID, snapshot)
	return updated.Clone(), nil
}

// Delete removes the record with id remotely and then from the published list.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.remote == nil {
		return s.mutationFailed(ctx, providers.OpDelete, id, providers.ErrProviderUnavailable)
	}
	if err := s.remote.DeleteMatch(ctx, id); err != nil {
		return s.mutationFailed(ctx, providers.OpDelete, id, err)
	}

	var snapshot []matches.Match
	s.update(func(st *State) {
		next := make([]matches.Match, 0, len(st.Matches))
		for _, m := range st.Matches {
			if m.ID != id {
				next = append(next, m.Clone())
			}
		}
		st.Matches = next
		s.reassertAdvisory(st)
		snapshot = next
	})
	s.mutationSucceeded(ctx, providers.OpDelete, id, snapshot)
	return nil
}

// Replace saves list to the local store and publishes it. The remote provider is not called.
func (s *Store) Replace(ctx context.Context, list []matches.Match) error {
	published := matches.CloneAll(list)
	if err := s.local.Save(ctx, published); err != nil {
		logging.Error(s.log(ctx), "replace failed", err,
			slog.String(logging.FieldOperation, OpReplace),
		)
		s.metrics.RecordStoreMutation(OpReplace, err)
		return err
	}

	s.update(func(st *State) {
		st.Matches = matches.CloneAll(published)
		s.reassertAdvisory(st)
	})
	s.metrics.RecordStoreMutation(OpReplace, nil)
	return nil
}

// mutationFailed logs err and returns it unchanged. Published state is not
// touched; availability only changes through a load.
func (s *Store) mutationFailed(ctx context.Context, op, id string, err error) error {
	args := []any{slog.String(logging.FieldOperation, op)}
	if id != "" {
		args = append(args, slog.String(logging.FieldMatchID, id))
	}
	logging.Error(s.log(ctx), "match mutation failed", err, args...)
	s.metrics.RecordStoreMutation(op, err)
	return err
}

func (s *Store) mutationSucceeded(ctx context.Context, op, id string, snapshot []matches.Match) {
	logging.Debug(s.log(ctx), "match mutation applied",
		slog.String(logging.FieldOperation, op),
		slog.String(logging.FieldMatchID, id),
	)
	s.metrics.RecordStoreMutation(op, nil)
	s.mirror(ctx, snapshot)
}

// reassertAdvisory must be called with mu held.
func (s *Store) reassertAdvisory(st *State) {
	if !st.IsAPIAvailable {
		st.Error = AdvisoryMessage
	}
}

func (s *Store) degrade() {
	changed := false
	s.update(func(st *State) {
		changed = st.IsAPIAvailable
		st.IsAPIAvailable = false
		st.Error = AdvisoryMessage
	})
	if changed {
		s.metrics.RecordAvailabilityChange(false)
	}
}

func (s *Store) mirror(ctx context.Context, list []matches.Match) {
	if !s.mirrorLocal {
		return
	}
	if err := s.local.Save(ctx, list); err != nil {
		logging.Warn(s.log(ctx), "local mirror failed", slog.Any("err", err))
	}
}

func (s *Store) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}
