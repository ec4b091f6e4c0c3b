// Package local holds the persistent fallback copy of the match list.
package local

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// Store persists the last known match list.
// Load never fails: anything unreadable is logged and treated as empty.
type Store interface {
	Load(ctx context.Context) []matches.Match
	Save(ctx context.Context, list []matches.Match) error
}

// Backend kinds accepted by the LOCAL_STORE setting.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

func warnLoad(ctx context.Context, logger *slog.Logger, kind string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, "local store load failed; using empty list",
		slog.String("store", kind),
		slog.Any("err", err),
	)
}
