package store

import (
	"context"
	"fmt"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/platform"
)

func assetTable(kind model.AssetKind) (string, error) {
	switch kind {
	case model.KindItem:
		return "items", nil
	case model.KindAvatar:
		return "avatars", nil
	case model.KindRoom:
		return "rooms", nil
	}
	return "", fmt.Errorf("unknown asset kind %q", kind)
}

// FindAsset retrieves an asset of the given kind by ID. Soft-deleted assets
// are excluded; they must not participate in permission resolution.
func (s *Store) FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error) {
	table, err := assetTable(kind)
	if err != nil {
		return nil, err
	}

	a := model.Asset{Kind: kind}
	err = s.db.QueryRow(ctx,
		`SELECT id, resource_id, name, is_premium, is_free, price, owner_project_id, access_policy, created_at
		 FROM `+table+` WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&a.ID, &a.ResourceID, &a.Name, &a.IsPremium, &a.IsFree, &a.Price,
		&a.OwnerProjectID, &a.Policy, &a.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", kind, id, err)
	}
	return &a, nil
}

// CreateAsset inserts a new asset row into the kind's table. The ID is
// generated here; the caller fills in everything else.
func (s *Store) CreateAsset(ctx context.Context, a *model.Asset) (*model.Asset, error) {
	table, err := assetTable(a.Kind)
	if err != nil {
		return nil, err
	}

	a.ID = platform.NewID()
	if a.Policy == "" {
		a.Policy = model.PolicyPrivate
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO `+table+` (id, resource_id, name, is_premium, is_free, price, owner_project_id, access_policy, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 RETURNING created_at`,
		a.ID, a.ResourceID, a.Name, a.IsPremium, a.IsFree, a.Price, a.OwnerProjectID, a.Policy,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", a.Kind, err)
	}
	return a, nil
}

// FindAssetByResourceID retrieves an asset by its external-facing slug.
func (s *Store) FindAssetByResourceID(ctx context.Context, kind model.AssetKind, resourceID string) (*model.Asset, error) {
	table, err := assetTable(kind)
	if err != nil {
		return nil, err
	}

	a := model.Asset{Kind: kind}
	err = s.db.QueryRow(ctx,
		`SELECT id, resource_id, name, is_premium, is_free, price, owner_project_id, access_policy, created_at
		 FROM `+table+` WHERE resource_id = $1 AND deleted_at IS NULL`, resourceID,
	).Scan(&a.ID, &a.ResourceID, &a.Name, &a.IsPremium, &a.IsFree, &a.Price,
		&a.OwnerProjectID, &a.Policy, &a.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s by resource id: %w", kind, err)
	}
	return &a, nil
}

// DeleteAsset soft-deletes an asset, excluding it from all future resolution.
func (s *Store) DeleteAsset(ctx context.Context, kind model.AssetKind, id string) error {
	table, err := assetTable(kind)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE `+table+` SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s not found or already deleted", kind, id)
	}
	return nil
}
