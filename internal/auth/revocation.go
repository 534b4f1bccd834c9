package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roomverse/platform/internal/cache"
)

const revocationKeyPrefix = "revoked:"

// RevocationList tracks invalidated bearer tokens until their natural
// expiry. Backed by the cache store, so entries self-expire and the list
// never grows unboundedly.
type RevocationList struct {
	cache cache.Store
}

// NewRevocationList creates a RevocationList over the given cache store.
func NewRevocationList(store cache.Store) *RevocationList {
	return &RevocationList{cache: store}
}

// Revoke inserts the token with a TTL equal to its remaining lifetime.
// Tokens already past expiry are not inserted; verification rejects them
// on its own.
func (rl *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := rl.cache.SetWithTTL(ctx, revocationKeyPrefix+token, []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the exact token string has been revoked. A
// cache failure is reported as an error so the caller can fail closed.
func (rl *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := rl.cache.Get(ctx, revocationKeyPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return false, nil
		}
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}
