package server

import (
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/matches-service/internal/config"
	"github.com/preston-bernstein/matches-service/internal/local"
	"github.com/preston-bernstein/matches-service/internal/logging"
)

// buildLocalStore opens the configured local store. A sqlite database that
// cannot be opened falls back to memory so the service still starts.
func buildLocalStore(cfg config.LocalConfig, logger *slog.Logger) local.Store {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	switch kind {
	case local.KindMemory:
		return local.NewMemoryStore(nil)
	case local.KindFile, "":
		return local.NewFileStore(cfg.Path, logger)
	case local.KindSQLite:
		st, err := local.OpenSQLiteStore(cfg.Path, logger)
		if err != nil {
			logging.Error(logger, "sqlite store unavailable, using memory", err,
				slog.String("path", cfg.Path),
			)
			return local.NewMemoryStore(nil)
		}
		return st
	case local.KindRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return local.NewRedisStore(rdb, cfg.RedisKey, cfg.RedisTTL, logger)
	default:
		logging.Warn(logger, "unknown local store kind, falling back to file",
			slog.String("kind", cfg.Kind),
		)
		return local.NewFileStore(cfg.Path, logger)
	}
}
