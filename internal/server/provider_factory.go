package server

import (
	"log/slog"

	"github.com/preston-bernstein/matches-service/internal/config"
	"github.com/preston-bernstein/matches-service/internal/metrics"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

// providerFactory assembles the provider with the shared instrumentation wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap instruments an already-built provider. Exactly one remote attempt per call.
func (f providerFactory) wrap(cfg config.Config, base providers.MatchProvider) providers.MatchProvider {
	return providers.NewInstrumentedProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}
