package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/platform"
)

// FindGrant retrieves the explicit grant for a (project, asset, kind)
// triple. Expiry is not evaluated here; the resolver decides what an
// expired grant means.
func (s *Store) FindGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string) (*model.ResourceGrant, error) {
	var g model.ResourceGrant
	err := s.db.QueryRow(ctx,
		`SELECT id, project_id, asset_id, asset_kind, can_access, can_download, expires_at, created_at
		 FROM resource_grants WHERE project_id = $1 AND asset_id = $2 AND asset_kind = $3`,
		projectID, assetID, kind,
	).Scan(&g.ID, &g.ProjectID, &g.AssetID, &g.AssetKind, &g.CanAccess, &g.CanDownload,
		&g.ExpiresAt, &g.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find grant: %w", err)
	}
	return &g, nil
}

// UpsertGrant creates or replaces the grant for a (project, asset, kind)
// triple. The composite unique constraint keeps at most one row per triple.
func (s *Store) UpsertGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string, canAccess, canDownload bool, expiresAt *time.Time) (*model.ResourceGrant, error) {
	g := &model.ResourceGrant{
		ID:          platform.NewID(),
		ProjectID:   projectID,
		AssetID:     assetID,
		AssetKind:   kind,
		CanAccess:   canAccess,
		CanDownload: canDownload,
		ExpiresAt:   expiresAt,
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO resource_grants (id, project_id, asset_id, asset_kind, can_access, can_download, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (project_id, asset_id, asset_kind)
		 DO UPDATE SET can_access = $5, can_download = $6, expires_at = $7
		 RETURNING id, created_at`,
		g.ID, g.ProjectID, g.AssetID, g.AssetKind, g.CanAccess, g.CanDownload, g.ExpiresAt,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert grant: %w", err)
	}
	return g, nil
}

// DeleteGrant removes an explicit grant, reverting the project to the
// asset's default visibility.
func (s *Store) DeleteGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM resource_grants WHERE project_id = $1 AND asset_id = $2 AND asset_kind = $3`,
		projectID, assetID, kind,
	)
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("grant not found")
	}
	return nil
}
