package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomverse/platform/internal/cache"
)

func TestRevocationList_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	rl := NewRevocationList(cache.NewMemory())

	require.NoError(t, rl.Revoke(ctx, "token-a", time.Now().Add(time.Hour)))

	revoked, err := rl.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = rl.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationList_ExpiredTokenNotInserted(t *testing.T) {
	ctx := context.Background()
	rl := NewRevocationList(cache.NewMemory())

	require.NoError(t, rl.Revoke(ctx, "stale", time.Now().Add(-time.Minute)))

	revoked, err := rl.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationList_EntrySelfExpires(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	rl := NewRevocationList(cache.NewRedis(client))

	require.NoError(t, rl.Revoke(ctx, "token-a", time.Now().Add(time.Second)))
	mr.FastForward(2 * time.Second)

	revoked, err := rl.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
}
