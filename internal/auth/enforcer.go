package auth

import (
	"github.com/roomverse/platform/internal/model"
)

// RequireRole checks that the principal is an admin carrying one of the
// allowed roles.
func RequireRole(p Principal, allowed ...model.AdminRole) *Error {
	if p == nil {
		return ErrAuthenticationRequired()
	}
	admin, ok := p.(*AdminPrincipal)
	if !ok {
		return ErrInsufficientPermissions()
	}
	for _, role := range allowed {
		if admin.Role == role {
			return nil
		}
	}
	return ErrInsufficientPermissions()
}

// RequireScope checks that the principal is an API key whose scope set
// intersects the required set, or carries the wildcard. An empty required
// set always passes.
func RequireScope(p Principal, required ...string) *Error {
	if p == nil {
		return ErrAuthenticationRequired()
	}
	key, ok := p.(*APIKeyPrincipal)
	if !ok {
		return ErrAPIKeyRequired()
	}
	if len(required) == 0 {
		return nil
	}
	for _, scope := range required {
		if key.HasScope(scope) {
			return nil
		}
	}
	return ErrInsufficientScopes(required)
}
