package auth

import (
	"context"

	"github.com/roomverse/platform/internal/model"
)

// Principal is the authenticated identity attached to a request. Exactly
// one variant is attached per request; it is constructed by the validator
// and discarded when the response ends.
type Principal interface {
	principal()
}

// AdminPrincipal is an admin account authenticated via bearer token.
type AdminPrincipal struct {
	ID    string
	Email string
	Role  model.AdminRole
}

// DeveloperPrincipal is a developer account authenticated via bearer token.
// DeveloperID equals ID: the token subject for a developer is its own
// developer id.
type DeveloperPrincipal struct {
	ID          string
	Email       string
	DeveloperID string
}

// APIKeyPrincipal is a project-scoped API key identity.
type APIKeyPrincipal struct {
	ID          string
	Key         string
	ProjectID   string
	DeveloperID string
	Scopes      []string
}

func (*AdminPrincipal) principal()     {}
func (*DeveloperPrincipal) principal() {}
func (*APIKeyPrincipal) principal()    {}

// HasScope reports whether the key carries the named scope or the wildcard.
func (p *APIKeyPrincipal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == model.ScopeWildcard || s == scope {
			return true
		}
	}
	return false
}

type principalContextKey struct{}

// ContextWithPrincipal attaches the principal to the request context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal, or nil if unauthenticated.
func PrincipalFromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalContextKey{}).(Principal)
	return p
}

// APIKeyFromContext extracts an API key principal, or nil if the request
// was authenticated some other way.
func APIKeyFromContext(ctx context.Context) *APIKeyPrincipal {
	p, _ := PrincipalFromContext(ctx).(*APIKeyPrincipal)
	return p
}

// AdminFromContext extracts an admin principal, or nil.
func AdminFromContext(ctx context.Context) *AdminPrincipal {
	p, _ := PrincipalFromContext(ctx).(*AdminPrincipal)
	return p
}

// DeveloperFromContext extracts a developer principal, or nil.
func DeveloperFromContext(ctx context.Context) *DeveloperPrincipal {
	p, _ := PrincipalFromContext(ctx).(*DeveloperPrincipal)
	return p
}
