package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/cache"
	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

// CredentialStore is the subset of the store the validator depends on.
type CredentialStore interface {
	FindAPIKeyByValue(ctx context.Context, rawKey string) (*store.APIKeyAuthRow, error)
	FindAdmin(ctx context.Context, id string) (*model.Admin, error)
	FindDeveloper(ctx context.Context, id string) (*model.Developer, error)
	TouchAPIKeyLastUsed(ctx context.Context, id string) error
}

// TouchFunc records an API key use off the request path. Implementations
// must not block; failures are their own to log.
type TouchFunc func(apiKeyID string)

// Validator authenticates inbound credentials and produces typed
// principals. Every unexpected store or cache failure denies the request:
// the validator never defaults to allow.
type Validator struct {
	store       CredentialStore
	cache       cache.Store
	tokens      *TokenManager
	revocations *RevocationList
	touch       TouchFunc
	logger      zerolog.Logger

	apiKeyCacheTTL  time.Duration
	accountCacheTTL time.Duration
}

// ValidatorConfig collects the validator's dependencies.
type ValidatorConfig struct {
	Store       CredentialStore
	Cache       cache.Store
	Tokens      *TokenManager
	Revocations *RevocationList
	// Touch handles the fire-and-forget last-used update. When nil, the
	// validator spawns a detached goroutine against the store.
	Touch           TouchFunc
	Logger          zerolog.Logger
	APIKeyCacheTTL  time.Duration
	AccountCacheTTL time.Duration
}

// NewValidator constructs a Validator.
func NewValidator(cfg ValidatorConfig) *Validator {
	v := &Validator{
		store:           cfg.Store,
		cache:           cfg.Cache,
		tokens:          cfg.Tokens,
		revocations:     cfg.Revocations,
		touch:           cfg.Touch,
		logger:          cfg.Logger,
		apiKeyCacheTTL:  cfg.APIKeyCacheTTL,
		accountCacheTTL: cfg.AccountCacheTTL,
	}
	if v.touch == nil {
		v.touch = v.goroutineTouch
	}
	if v.apiKeyCacheTTL <= 0 {
		v.apiKeyCacheTTL = 60 * time.Second
	}
	if v.accountCacheTTL <= 0 {
		v.accountCacheTTL = 60 * time.Second
	}
	return v
}

// apiKeyProjection is the cached view of an authenticated key. The cache
// is advisory: a cached entry is only trusted while its embedded statuses
// are ACTIVE, and it expires on a short TTL regardless.
type apiKeyProjection struct {
	ID              string              `json:"id"`
	Status          model.KeyStatus     `json:"status"`
	DeveloperStatus model.AccountStatus `json:"developer_status"`
	Scopes          []string            `json:"scopes"`
	ProjectID       string              `json:"project_id"`
	DeveloperID     string              `json:"developer_id"`
	ExpiresAt       *time.Time          `json:"expires_at,omitempty"`
}

func apiKeyCacheKey(rawKey string) string {
	return "apikey:" + rawKey
}

// CheckAPIKey validates a raw API key and returns its principal. The key
// must be well-formed, present in the store, ACTIVE, unexpired, and owned
// by an ACTIVE developer.
func (v *Validator) CheckAPIKey(ctx context.Context, rawKey string) (*APIKeyPrincipal, *Error) {
	if rawKey == "" {
		return nil, ErrMissingCredential("missing API key")
	}
	if !strings.HasPrefix(rawKey, model.KeyPrefix) || len(rawKey) < model.KeyMinLength {
		return nil, ErrMalformedCredential("malformed API key")
	}

	now := time.Now()

	if proj := v.readAPIKeyCache(ctx, rawKey); proj != nil {
		// Only a fully-positive cached projection short-circuits the
		// store. Anything stale forces a fresh lookup so a reactivated
		// or newly-suspended key is never decided from the cache.
		if proj.Status == model.KeyActive && proj.DeveloperStatus == model.AccountActive &&
			(proj.ExpiresAt == nil || now.Before(*proj.ExpiresAt)) {
			v.touch(proj.ID)
			return &APIKeyPrincipal{
				ID:          proj.ID,
				Key:         rawKey,
				ProjectID:   proj.ProjectID,
				DeveloperID: proj.DeveloperID,
				Scopes:      proj.Scopes,
			}, nil
		}
	}

	row, err := v.store.FindAPIKeyByValue(ctx, rawKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCredentialNotFound()
		}
		v.logger.Error().Err(err).Str("key_prefix", keyPrefix(rawKey)).Msg("api key lookup failed")
		return nil, ErrInternal()
	}

	if row.Key.Status != model.KeyActive {
		return nil, ErrCredentialInactive(strings.ToLower(string(row.Key.Status)))
	}
	if row.Key.IsExpired(now) {
		return nil, ErrCredentialExpired()
	}
	switch row.DeveloperStatus {
	case model.AccountActive:
	case model.AccountSuspended:
		return nil, ErrAccountSuspended()
	default:
		return nil, ErrAccountInactive()
	}

	v.writeAPIKeyCache(ctx, rawKey, &apiKeyProjection{
		ID:              row.Key.ID,
		Status:          row.Key.Status,
		DeveloperStatus: row.DeveloperStatus,
		Scopes:          row.Key.Scopes,
		ProjectID:       row.ProjectID,
		DeveloperID:     row.DeveloperID,
		ExpiresAt:       row.Key.ExpiresAt,
	})

	v.touch(row.Key.ID)

	return &APIKeyPrincipal{
		ID:          row.Key.ID,
		Key:         rawKey,
		ProjectID:   row.ProjectID,
		DeveloperID: row.DeveloperID,
		Scopes:      row.Key.Scopes,
	}, nil
}

// CheckBearer validates a bearer token for the given subject kind and
// returns an AdminPrincipal or DeveloperPrincipal.
func (v *Validator) CheckBearer(ctx context.Context, token string, kind SubjectKind) (Principal, *Error) {
	if token == "" {
		return nil, ErrMissingCredential("missing bearer token")
	}

	claims, err := v.tokens.Verify(token)
	if err != nil {
		// Signature, format, and expiry failures all surface as the same
		// code; the log line keeps the distinction.
		v.logger.Warn().Err(err).Msg("bearer token verification failed")
		return nil, ErrInvalidToken()
	}
	if claims.Subject == "" || claims.Email == "" || claims.Kind != kind {
		return nil, ErrInvalidToken()
	}

	revoked, err := v.revocations.IsRevoked(ctx, token)
	if err != nil {
		v.logger.Error().Err(err).Msg("revocation check failed")
		return nil, ErrInternal()
	}
	if revoked {
		return nil, ErrTokenRevoked()
	}

	switch kind {
	case SubjectAdmin:
		return v.resolveAdmin(ctx, claims)
	case SubjectDeveloper:
		return v.resolveDeveloper(ctx, claims)
	}
	return nil, ErrInvalidToken()
}

func (v *Validator) resolveAdmin(ctx context.Context, claims *Claims) (Principal, *Error) {
	cacheKey := "admin:" + claims.Subject

	var admin model.Admin
	if !v.readAccountCache(ctx, cacheKey, &admin) || admin.Status != model.AccountActive {
		fresh, err := v.store.FindAdmin(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrSubjectNotFound()
			}
			v.logger.Error().Err(err).Str("admin_id", claims.Subject).Msg("admin lookup failed")
			return nil, ErrInternal()
		}
		admin = *fresh
		v.writeAccountCache(ctx, cacheKey, admin)
	}

	if authErr := accountStatusError(admin.Status); authErr != nil {
		return nil, authErr
	}

	return &AdminPrincipal{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

func (v *Validator) resolveDeveloper(ctx context.Context, claims *Claims) (Principal, *Error) {
	cacheKey := "developer:" + claims.Subject

	var dev model.Developer
	if !v.readAccountCache(ctx, cacheKey, &dev) || dev.Status != model.AccountActive {
		fresh, err := v.store.FindDeveloper(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrSubjectNotFound()
			}
			v.logger.Error().Err(err).Str("developer_id", claims.Subject).Msg("developer lookup failed")
			return nil, ErrInternal()
		}
		dev = *fresh
		v.writeAccountCache(ctx, cacheKey, dev)
	}

	if authErr := accountStatusError(dev.Status); authErr != nil {
		return nil, authErr
	}

	// The token subject for a developer is its own developer id.
	return &DeveloperPrincipal{ID: dev.ID, Email: dev.Email, DeveloperID: dev.ID}, nil
}

func accountStatusError(status model.AccountStatus) *Error {
	switch status {
	case model.AccountActive:
		return nil
	case model.AccountSuspended:
		return ErrAccountSuspended()
	default:
		return ErrAccountInactive()
	}
}

func (v *Validator) readAPIKeyCache(ctx context.Context, rawKey string) *apiKeyProjection {
	if v.cache == nil {
		return nil
	}
	data, err := v.cache.Get(ctx, apiKeyCacheKey(rawKey))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			v.logger.Warn().Err(err).Msg("api key cache read failed")
		}
		return nil
	}
	var proj apiKeyProjection
	if err := json.Unmarshal(data, &proj); err != nil {
		v.logger.Warn().Err(err).Msg("api key cache entry corrupt")
		return nil
	}
	return &proj
}

// writeAPIKeyCache is best-effort: a failed write never fails the request.
func (v *Validator) writeAPIKeyCache(ctx context.Context, rawKey string, proj *apiKeyProjection) {
	if v.cache == nil {
		return
	}
	data, err := json.Marshal(proj)
	if err != nil {
		return
	}
	if err := v.cache.SetWithTTL(ctx, apiKeyCacheKey(rawKey), data, v.apiKeyCacheTTL); err != nil {
		v.logger.Warn().Err(err).Msg("api key cache write failed")
	}
}

func (v *Validator) readAccountCache(ctx context.Context, key string, out any) bool {
	if v.cache == nil {
		return false
	}
	data, err := v.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			v.logger.Warn().Err(err).Msg("account cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		v.logger.Warn().Err(err).Msg("account cache entry corrupt")
		return false
	}
	return true
}

func (v *Validator) writeAccountCache(ctx context.Context, key string, account any) {
	if v.cache == nil {
		return
	}
	data, err := json.Marshal(account)
	if err != nil {
		return
	}
	if err := v.cache.SetWithTTL(ctx, key, data, v.accountCacheTTL); err != nil {
		v.logger.Warn().Err(err).Msg("account cache write failed")
	}
}

// goroutineTouch is the fallback fire-and-forget transport: a detached
// goroutine with its own timeout, failure swallowed after logging.
func (v *Validator) goroutineTouch(apiKeyID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := v.store.TouchAPIKeyLastUsed(ctx, apiKeyID); err != nil {
			v.logger.Warn().Err(err).Str("api_key_id", apiKeyID).Msg("last-used update failed")
		}
	}()
}

// keyPrefix returns a short non-reversible prefix safe for log lines.
func keyPrefix(rawKey string) string {
	if len(rawKey) < 12 {
		return rawKey
	}
	return rawKey[:12]
}
