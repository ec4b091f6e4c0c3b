package local

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

const defaultRedisKey = "matches:local"

// RedisStore keeps the match list as one JSON value under a single key.
type RedisStore struct {
	rdb    redis.UniversalClient
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore wraps an existing client. A zero ttl keeps the value forever.
func NewRedisStore(rdb redis.UniversalClient, key string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key, ttl: ttl, logger: logger}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.rdb.Close() }

// Load reads the key. A missing key, an unreachable server or bad JSON yields an empty list.
func (s *RedisStore) Load(ctx context.Context) []matches.Match {
	val, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []matches.Match{}
	}
	if err != nil {
		warnLoad(ctx, s.logger, KindRedis, err)
		return []matches.Match{}
	}

	var list []matches.Match
	if err := json.Unmarshal(val, &list); err != nil {
		warnLoad(ctx, s.logger, KindRedis, err)
		return []matches.Match{}
	}
	if list == nil {
		return []matches.Match{}
	}
	return list
}

// Save overwrites the key with list.
func (s *RedisStore) Save(ctx context.Context, list []matches.Match) error {
	if list == nil {
		list = []matches.Match{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, b, s.ttl).Err()
}
