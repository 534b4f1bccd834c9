package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/platform"
)

// APIKeyAuthRow is the joined projection the credential validator needs:
// the key together with its project and the project's owning developer.
type APIKeyAuthRow struct {
	Key             model.APIKey
	ProjectID       string
	DeveloperID     string
	DeveloperStatus model.AccountStatus
}

// FindAPIKeyByValue looks up an API key by its exact raw value, joined with
// its project and the project's developer. Returns ErrNotFound if no row
// matches.
func (s *Store) FindAPIKeyByValue(ctx context.Context, rawKey string) (*APIKeyAuthRow, error) {
	var row APIKeyAuthRow
	err := s.db.QueryRow(ctx,
		`SELECT k.id, k.key, k.name, k.scopes, k.status, k.project_id, k.expires_at, k.last_used_at, k.created_at,
		        p.id, p.developer_id, d.status
		 FROM api_keys k
		 JOIN projects p ON p.id = k.project_id
		 JOIN developers d ON d.id = p.developer_id
		 WHERE k.key = $1`, rawKey,
	).Scan(&row.Key.ID, &row.Key.Key, &row.Key.Name, &row.Key.Scopes, &row.Key.Status,
		&row.Key.ProjectID, &row.Key.ExpiresAt, &row.Key.LastUsedAt, &row.Key.CreatedAt,
		&row.ProjectID, &row.DeveloperID, &row.DeveloperStatus)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find api key: %w", err)
	}
	return &row, nil
}

// CreateAPIKey generates and stores a new key for the project, returning the
// model with the raw key populated. The raw key is shown to the caller once.
func (s *Store) CreateAPIKey(ctx context.Context, projectID, name string, scopes []string, expiresAt *time.Time) (*model.APIKey, error) {
	if scopes == nil {
		scopes = []string{model.ScopeWildcard}
	}

	key := &model.APIKey{
		ID:        platform.NewID(),
		Key:       platform.NewAPIKey(),
		Name:      name,
		Scopes:    scopes,
		Status:    model.KeyActive,
		ProjectID: projectID,
		ExpiresAt: expiresAt,
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO api_keys (id, key, name, scopes, status, project_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 RETURNING created_at`,
		key.ID, key.Key, key.Name, key.Scopes, key.Status, key.ProjectID, key.ExpiresAt,
	).Scan(&key.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert api key: %w", err)
	}

	return key, nil
}

// FindAPIKey retrieves a single key by ID, scoped to the owning developer.
// Returns ErrNotFound if the key does not exist or belongs to someone else.
func (s *Store) FindAPIKey(ctx context.Context, id, developerID string) (*model.APIKey, error) {
	var k model.APIKey
	err := s.db.QueryRow(ctx,
		`SELECT k.id, k.key, k.name, k.scopes, k.status, k.project_id, k.expires_at, k.last_used_at, k.created_at
		 FROM api_keys k
		 JOIN projects p ON p.id = k.project_id
		 WHERE k.id = $1 AND p.developer_id = $2`, id, developerID,
	).Scan(&k.ID, &k.Key, &k.Name, &k.Scopes, &k.Status,
		&k.ProjectID, &k.ExpiresAt, &k.LastUsedAt, &k.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find api key %s: %w", id, err)
	}
	return &k, nil
}

// UpdateAPIKey replaces the name and scope list of an active key, scoped to
// the owning developer. Revoked and expired keys cannot be edited.
func (s *Store) UpdateAPIKey(ctx context.Context, id, developerID, name string, scopes []string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE api_keys SET name = $1, scopes = $2
		 WHERE id = $3 AND status = $4
		   AND project_id IN (SELECT id FROM projects WHERE developer_id = $5)`,
		name, scopes, id, model.KeyActive, developerID,
	)
	if err != nil {
		return fmt.Errorf("update api key %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("api key %s not found or not active", id)
	}
	return nil
}

// ListAPIKeys retrieves all keys belonging to a project, newest first.
func (s *Store) ListAPIKeys(ctx context.Context, projectID string) ([]model.APIKey, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, key, name, scopes, status, project_id, expires_at, last_used_at, created_at
		 FROM api_keys WHERE project_id = $1 ORDER BY created_at DESC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.Key, &k.Name, &k.Scopes, &k.Status,
			&k.ProjectID, &k.ExpiresAt, &k.LastUsedAt, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// RevokeAPIKey soft-deletes a key by flipping its status, scoped to the
// owning developer. The row is kept for audit retention.
func (s *Store) RevokeAPIKey(ctx context.Context, id, developerID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE api_keys SET status = $1
		 WHERE id = $2 AND status = $3
		   AND project_id IN (SELECT id FROM projects WHERE developer_id = $4)`,
		model.KeyRevoked, id, model.KeyActive, developerID,
	)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("api key %s not found or already revoked", id)
	}
	return nil
}

// TouchAPIKeyLastUsed updates the key's last-used timestamp. Best-effort:
// callers run this off the request path and swallow failures after logging.
func (s *Store) TouchAPIKeyLastUsed(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE api_keys SET last_used_at = now() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("touch api key %s: %w", id, err)
	}
	return nil
}
