package request

// CreateAPIKey holds the request body for creating an API key.
type CreateAPIKey struct {
	ProjectID     string   `json:"project_id" validate:"required"`
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Scopes        []string `json:"scopes" validate:"required,min=1,dive,min=1"`
	ExpiresInDays int      `json:"expires_in_days" validate:"omitempty,min=1,max=3650"`
}

// UpdateAPIKey holds the request body for editing an API key. Name and
// scopes are replaced wholesale.
type UpdateAPIKey struct {
	Name   string   `json:"name" validate:"required,min=1,max=255"`
	Scopes []string `json:"scopes" validate:"required,min=1,dive,min=1"`
}
