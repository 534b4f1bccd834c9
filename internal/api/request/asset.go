package request

// CreateAsset holds the request body for registering an asset. owner and
// access_policy only apply to items; is_free drives avatars and rooms.
type CreateAsset struct {
	ResourceID     string   `json:"resource_id" validate:"required,min=1,max=255"`
	Name           string   `json:"name" validate:"required,min=1,max=255"`
	IsPremium      bool     `json:"is_premium"`
	IsFree         bool     `json:"is_free"`
	Price          *float64 `json:"price" validate:"omitempty,min=0"`
	OwnerProjectID string   `json:"owner_project_id" validate:"omitempty,min=1"`
	AccessPolicy   string   `json:"access_policy" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}
