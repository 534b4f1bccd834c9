package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client), mr
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedis(t)

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), time.Minute))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_MissOnUnknownKey(t *testing.T) {
	store, _ := newTestRedis(t)
	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedis(t)

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), time.Minute))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), -time.Second))
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_SweepOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.SetWithTTL(ctx, "stale", []byte("v"), -time.Second))
	require.NoError(t, store.SetWithTTL(ctx, "fresh", []byte("v"), time.Minute))

	store.mu.RLock()
	_, staleKept := store.entries["stale"]
	store.mu.RUnlock()
	assert.False(t, staleKept)
}
