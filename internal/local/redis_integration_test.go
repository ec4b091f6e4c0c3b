//go:build integration

package local

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rdb.Ping(ctx).Err(), "redis is not reachable")
	return rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)

	key := "matches:test:" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = rdb.Del(ctx, key).Err() })

	exerciseStore(t, NewRedisStore(rdb, key, time.Minute, nil))
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)

	key := "matches:test:ttl"
	t.Cleanup(func() { _ = rdb.Del(ctx, key).Err() })

	s := NewRedisStore(rdb, key, time.Hour, nil)
	require.NoError(t, s.Save(ctx, sampleMatches()))

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
}

func TestRedisStoreBadPayloadYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)

	key := "matches:test:bad"
	t.Cleanup(func() { _ = rdb.Del(ctx, key).Err() })
	require.NoError(t, rdb.Set(ctx, key, "{nope", 0).Err())

	require.Empty(t, NewRedisStore(rdb, key, 0, nil).Load(ctx))
}
