package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client)
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-1", 7, time.Hour))

		userID, ok, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint(7), userID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "never-issued")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired token", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-exp", 7, time.Minute))
		mr.FastForward(2 * time.Minute)

		_, ok, err := store.Get(ctx, "tok-exp")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-del", 7, time.Hour))
		require.NoError(t, store.Delete(ctx, "tok-del"))

		_, ok, err := store.Get(ctx, "tok-del")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-1", 3, time.Hour))

		userID, ok, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint(3), userID)
	})

	t.Run("expired entries are dropped on read", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-exp", 3, -time.Second))

		_, ok, err := store.Get(ctx, "tok-exp")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "tok-del", 3, time.Hour))
		require.NoError(t, store.Delete(ctx, "tok-del"))
		require.NoError(t, store.Delete(ctx, "tok-del"))
	})
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := newToken()
		require.NoError(t, err)
		assert.Len(t, token, tokenBytes*2)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
