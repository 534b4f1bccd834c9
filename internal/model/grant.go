package model

import "time"

// ResourceGrant is an explicit permission row overriding an asset's default
// visibility for one project. At most one grant exists per (project, asset,
// kind) triple.
type ResourceGrant struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	AssetID     string     `json:"asset_id"`
	AssetKind   AssetKind  `json:"asset_kind"`
	CanAccess   bool       `json:"can_access"`
	CanDownload bool       `json:"can_download"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsExpired reports whether the grant has lapsed. An expired grant is
// treated as absent, not as a denial.
func (g *ResourceGrant) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && now.After(*g.ExpiresAt)
}
