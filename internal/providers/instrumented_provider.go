package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/metrics"
)

// instrumentedProvider wraps a MatchProvider with metrics and logging.
// It makes exactly one call to the inner provider per operation.
type instrumentedProvider struct {
	inner        MatchProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	now          func() time.Time
}

// NewInstrumentedProvider wraps inner so every call is timed, counted and logged on failure.
func NewInstrumentedProvider(inner MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string) MatchProvider {
	if providerName == "" {
		providerName = "unknown"
	}
	return &instrumentedProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		now:          time.Now,
	}
}

func (p *instrumentedProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	list, err := p.inner.FetchMatches(ctx)
	p.observe(ctx, OpFetch, "", start, err)
	return list, err
}

func (p *instrumentedProvider) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	if p.inner == nil {
		return matches.Match{}, ErrProviderUnavailable
	}
	start := p.now()
	created, err := p.inner.AddMatch(ctx, m)
	p.observe(ctx, OpAdd, m.ID, start, err)
	return created, err
}

func (p *instrumentedProvider) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	if p.inner == nil {
		return matches.Match{}, ErrProviderUnavailable
	}
	start := p.now()
	updated, err := p.inner.UpdateMatch(ctx, m)
	p.observe(ctx, OpUpdate, m.ID, start, err)
	return updated, err
}

func (p *instrumentedProvider) DeleteMatch(ctx context.Context, id string) error {
	if p.inner == nil {
		return ErrProviderUnavailable
	}
	start := p.now()
	err := p.inner.DeleteMatch(ctx, id)
	p.observe(ctx, OpDelete, id, start, err)
	return err
}

func (p *instrumentedProvider) observe(ctx context.Context, op, id string, start time.Time, err error) {
	duration := p.now().Sub(start)
	p.metrics.RecordProviderAttempt(p.providerName, op, duration, err)

	if err == nil {
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.providerName, "provider call ok",
			slog.String(logging.FieldOperation, op),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		)
		return
	}

	args := []any{
		slog.String(logging.FieldOperation, op),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		slog.Any("err", err),
	}
	if id != "" {
		args = append(args, slog.String(logging.FieldMatchID, id))
	}
	if rl, ok := AsRateLimitError(err); ok {
		p.metrics.RecordRateLimit(p.providerName, rl.RetryAfter)
		args = append(args, slog.Duration("retry_after", rl.RetryAfter))
	}
	logWithProvider(ctx, p.logger, slog.LevelWarn, p.providerName, "provider call failed", args...)
}
