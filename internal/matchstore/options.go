package matchstore

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/matches-service/internal/metrics"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRecorder reports loads, mutations and availability changes to rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *Store) {
		s.metrics = rec
	}
}

// WithMirrorLocal saves the published list to the local store after a
// successful non-empty load or remote mutation.
func WithMirrorLocal(enabled bool) Option {
	return func(s *Store) {
		s.mirrorLocal = enabled
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}
