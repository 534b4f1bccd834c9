// Package cache provides the key/value store the auth engine uses for
// credential projections and the token revocation list. Both backends are
// safe for concurrent use and honor per-key TTLs.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is the narrow cache interface the engine consumes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
