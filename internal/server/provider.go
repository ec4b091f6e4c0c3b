package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/matches-service/internal/config"
	"github.com/preston-bernstein/matches-service/internal/providers"
	"github.com/preston-bernstein/matches-service/internal/providers/fixture"
	"github.com/preston-bernstein/matches-service/internal/providers/matchapi"
)

const (
	providerFixture  = "fixture"
	providerAPI      = "api"
	providerMatchAPI = "matchapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerFixture, "":
		return fixture.New()
	case providerAPI, providerMatchAPI:
		return matchapi.NewClient(matchapi.Config{
			BaseURL: cfg.API.BaseURL,
			APIKey:  cfg.API.APIKey,
			Timeout: cfg.API.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
