package model

import "time"

// KeyPrefix is the required prefix of every raw API key value.
const KeyPrefix = "pk_"

// KeyMinLength is the minimum length of a well-formed raw API key.
const KeyMinLength = 35

// ScopeWildcard grants every scope.
const ScopeWildcard = "*"

// KeyStatus is the lifecycle state of an API key.
type KeyStatus string

const (
	KeyActive  KeyStatus = "ACTIVE"
	KeyRevoked KeyStatus = "REVOKED"
	KeyExpired KeyStatus = "EXPIRED"
)

// APIKey represents an API key for authenticating against the platform API.
// Keys are soft-deleted: revocation flips Status rather than removing the row.
type APIKey struct {
	ID         string     `json:"id"`
	Key        string     `json:"-"`
	Name       string     `json:"name"`
	Scopes     []string   `json:"scopes"`
	Status     KeyStatus  `json:"status"`
	ProjectID  string     `json:"project_id"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DisplayPrefix returns a short non-reversible prefix of the raw key, safe
// for logs and listings.
func (k *APIKey) DisplayPrefix() string {
	if len(k.Key) < 12 {
		return k.Key
	}
	return k.Key[:12]
}

// IsExpired reports whether the key has an expiry in the past.
func (k *APIKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// HasScope reports whether the key carries the named scope or the wildcard.
func (k *APIKey) HasScope(scope string) bool {
	for _, s := range k.Scopes {
		if s == ScopeWildcard || s == scope {
			return true
		}
	}
	return false
}
