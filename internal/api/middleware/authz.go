package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/model"
)

// RequireRole returns middleware that checks the authenticated admin
// carries one of the allowed roles.
func RequireRole(roles ...model.AdminRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authErr := auth.RequireRole(auth.PrincipalFromContext(r.Context()), roles...); authErr != nil {
				deny(w, authErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireScope returns middleware that checks the authenticated API key
// carries one of the required scopes.
func RequireScope(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authErr := auth.RequireScope(auth.PrincipalFromContext(r.Context()), scopes...); authErr != nil {
				deny(w, authErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResourceGate guards asset routes with the permission resolver. The asset
// id is taken from the "id" URL parameter and the caller's project from
// its API key principal.
type ResourceGate struct {
	resolver *auth.Resolver
}

// NewResourceGate creates a ResourceGate.
func NewResourceGate(resolver *auth.Resolver) *ResourceGate {
	return &ResourceGate{resolver: resolver}
}

// Require returns middleware enforcing the given action on the given asset
// kind. Download implies access: the download action checks access first.
func (g *ResourceGate) Require(kind model.AssetKind, action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := auth.APIKeyFromContext(r.Context())
			if key == nil {
				deny(w, auth.ErrProjectAuthRequired())
				return
			}

			assetID := chi.URLParam(r, "id")
			if assetID == "" {
				deny(w, auth.ErrResourceNotFound())
				return
			}

			if action == auth.ActionDownload {
				access := g.resolver.CheckAccess(r.Context(), key.ProjectID, kind, assetID)
				if !access.Allowed {
					denyDecision(w, access)
					return
				}
			}

			decision := g.resolver.Check(r.Context(), key.ProjectID, kind, assetID, action)
			if !decision.Allowed {
				denyDecision(w, decision)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func denyDecision(w http.ResponseWriter, decision auth.Decision) {
	if decision.Reason == "asset not found" {
		deny(w, auth.ErrResourceNotFound())
		return
	}
	deny(w, auth.ErrPermissionDenied())
}
