package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter_LoadMissingKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test-missing")
	client.Del(ctx, adapter.Key())

	stock, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stock)
}

func TestRedisAdapter_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test-roundtrip")
	defer client.Del(ctx, adapter.Key())

	require.NoError(t, adapter.Save(ctx, map[string]int{"apple": 7, "banana": 2}))
	require.NoError(t, adapter.Save(ctx, map[string]int{"apple": 5}))

	stock, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"apple": 5}, stock)
}

func TestRedisAdapter_SaveEmptyClears(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test-clear")
	defer client.Del(ctx, adapter.Key())

	require.NoError(t, adapter.Save(ctx, map[string]int{"apple": 7}))
	require.NoError(t, adapter.Save(ctx, map[string]int{}))

	exists, err := client.Exists(ctx, adapter.Key()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestRedisAdapter_LoadGarbage(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test-garbage")
	defer client.Del(ctx, adapter.Key())

	client.Del(ctx, adapter.Key())
	client.HSet(ctx, adapter.Key(), "a", "not a number")

	_, err := adapter.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrFormat)
}
