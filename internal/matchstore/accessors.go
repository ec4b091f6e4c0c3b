package matchstore

import "github.com/preston-bernstein/matches-service/internal/domain/matches"

// Matches returns a copy of the published list.
func (s *Store) Matches() []matches.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matches.CloneAll(s.state.Matches)
}

// SetMatches publishes list as-is without persisting it or calling the remote provider.
func (s *Store) SetMatches(list []matches.Match) {
	published := matches.CloneAll(list)
	s.update(func(st *State) {
		st.Matches = published
	})
}

// IsLoading reports whether a load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// Error returns the advisory message, or "" when there is none.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Error
}

// IsAPIAvailable reports the last known health of the remote provider.
func (s *Store) IsAPIAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAPIAvailable
}

// State returns a copy of the full published state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a copy of the state after every change.
// Calls are serialized and arrive in commit order. fn runs on the goroutine
// that made the change, must not block and must not mutate the Store.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// update applies fn under the write lock and then notifies subscribers.
// notifyMu is held across both so a later commit cannot be delivered first.
func (s *Store) update(fn func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st.clone())
	}
}
