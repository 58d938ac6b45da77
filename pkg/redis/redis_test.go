package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/redis"
)

// unreachable points at a port nothing listens on.
func unreachable(t *testing.T) *goredis.Client {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 50 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()
	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://localhost:6379/0"}.Enabled())
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("bad url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "http://not-redis",
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: 2 * time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}

func TestStore_EmptyKeysAreNoops(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := redis.NewStore(unreachable(t), "signup:")

	val, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, store.Set(ctx, "", []byte("x"), time.Minute))
	assert.NoError(t, store.Set(ctx, "k", nil, time.Minute))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestStore_Unavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := redis.NewStore(unreachable(t), "signup:")

	_, err := store.Get(ctx, "cep:01310100")
	assert.ErrorIs(t, err, redis.ErrStoreFailed)
	assert.ErrorIs(t, store.Set(ctx, "cep:01310100", []byte("{}"), time.Minute), redis.ErrStoreFailed)
	assert.ErrorIs(t, store.Delete(ctx, "cep:01310100"), redis.ErrStoreFailed)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	err := redis.Healthcheck(unreachable(t))(context.Background())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}
