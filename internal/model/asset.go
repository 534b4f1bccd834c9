package model

import "time"

// AssetKind names the three permission-bearing resource categories.
type AssetKind string

const (
	KindItem   AssetKind = "item"
	KindAvatar AssetKind = "avatar"
	KindRoom   AssetKind = "room"
)

// Valid reports whether k is a known asset kind.
func (k AssetKind) Valid() bool {
	switch k {
	case KindItem, KindAvatar, KindRoom:
		return true
	}
	return false
}

// AccessPolicy is the default visibility of an item when no grant applies.
type AccessPolicy string

const (
	PolicyPublic  AccessPolicy = "PUBLIC"
	PolicyPrivate AccessPolicy = "PRIVATE"
)

// Asset is the permission-relevant projection of an item, avatar, or room.
// OwnerProjectID and Policy are populated for items only; IsFree drives the
// default rule for avatars and rooms.
type Asset struct {
	ID             string       `json:"id"`
	ResourceID     string       `json:"resource_id"`
	Kind           AssetKind    `json:"kind"`
	Name           string       `json:"name"`
	IsPremium      bool         `json:"is_premium"`
	IsFree         bool         `json:"is_free"`
	Price          *float64     `json:"price,omitempty"`
	OwnerProjectID string       `json:"owner_project_id,omitempty"`
	Policy         AccessPolicy `json:"access_policy,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty"`
}
