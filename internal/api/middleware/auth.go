package middleware

import (
	"net/http"
	"strings"

	"github.com/roomverse/platform/internal/api/response"
	"github.com/roomverse/platform/internal/auth"
)

// APIKeyHeader carries the raw API key on project-scoped requests.
const APIKeyHeader = "X-API-Key"

// Authenticator adapts the auth engine to chi middleware. The public-route
// classifier runs first on every request; a match skips the rest of the
// pipeline.
type Authenticator struct {
	validator *auth.Validator
	public    *auth.PublicRoutes
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(validator *auth.Validator, public *auth.PublicRoutes) *Authenticator {
	return &Authenticator{validator: validator, public: public}
}

// RequireAPIKey validates the X-API-Key header and attaches an API key
// principal.
func (a *Authenticator) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.public.IsPublic(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		principal, authErr := a.validator.CheckAPIKey(r.Context(), r.Header.Get(APIKeyHeader))
		if authErr != nil {
			deny(w, authErr)
			return
		}

		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin validates an admin bearer token.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.requireBearer(auth.SubjectAdmin, next)
}

// RequireDeveloper validates a developer bearer token.
func (a *Authenticator) RequireDeveloper(next http.Handler) http.Handler {
	return a.requireBearer(auth.SubjectDeveloper, next)
}

func (a *Authenticator) requireBearer(kind auth.SubjectKind, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.public.IsPublic(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearer(r)
		if token == "" {
			deny(w, auth.ErrMissingCredential("missing or malformed authorization header"))
			return
		}

		principal, authErr := a.validator.CheckBearer(r.Context(), token, kind)
		if authErr != nil {
			deny(w, authErr)
			return
		}

		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearer pulls the token out of "Authorization: Bearer <token>".
// Returns "" for an absent or malformed header.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}

func deny(w http.ResponseWriter, err *auth.Error) {
	authDenials.WithLabelValues(err.Code).Inc()
	response.WriteAuthError(w, err)
}
