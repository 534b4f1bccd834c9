package request

import "time"

// UpsertGrant holds the request body for creating or replacing a resource
// grant.
type UpsertGrant struct {
	ProjectID   string     `json:"project_id" validate:"required"`
	AssetID     string     `json:"asset_id" validate:"required"`
	CanAccess   bool       `json:"can_access"`
	CanDownload bool       `json:"can_download"`
	ExpiresAt   *time.Time `json:"expires_at" validate:"omitempty"`
}
