package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/api/request"
	"github.com/roomverse/platform/internal/api/response"
	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

// AccountStore is the subset of the store the auth handler depends on.
type AccountStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*model.Admin, string, error)
	FindDeveloperByEmail(ctx context.Context, email string) (*model.Developer, string, error)
}

// Auth handles login and logout for admin and developer accounts.
type Auth struct {
	store       AccountStore
	tokens      *auth.TokenManager
	revocations *auth.RevocationList
	logger      zerolog.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(accounts AccountStore, tokens *auth.TokenManager, revocations *auth.RevocationList, logger zerolog.Logger) *Auth {
	return &Auth{store: accounts, tokens: tokens, revocations: revocations, logger: logger}
}

// AdminLogin authenticates an admin by email and password and issues a
// bearer token.
func (h *Auth) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, passwordHash, err := h.store.FindAdminByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error().Err(err).Msg("admin login lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	if !auth.VerifyPassword(req.Password, passwordHash) {
		response.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if admin.Status != model.AccountActive {
		response.WriteError(w, http.StatusForbidden, "account is "+strings.ToLower(string(admin.Status)))
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Email, auth.SubjectAdmin)
	if err != nil {
		h.logger.Error().Err(err).Msg("admin token issue failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"admin": admin,
	})
}

// DeveloperLogin authenticates a developer by email and password and
// issues a bearer token.
func (h *Auth) DeveloperLogin(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	dev, passwordHash, err := h.store.FindDeveloperByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error().Err(err).Msg("developer login lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	if !auth.VerifyPassword(req.Password, passwordHash) {
		response.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if dev.Status != model.AccountActive {
		response.WriteError(w, http.StatusForbidden, "account is "+strings.ToLower(string(dev.Status)))
		return
	}

	token, err := h.tokens.Issue(dev.ID, dev.Email, auth.SubjectDeveloper)
	if err != nil {
		h.logger.Error().Err(err).Msg("developer token issue failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"developer": dev,
	})
}

// Logout revokes the presented bearer token for the remainder of its
// lifetime. The token was already verified by the auth middleware, so the
// unverified decode here only reads the expiry claim.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		response.WriteAuthError(w, auth.ErrMissingCredential("missing bearer token"))
		return
	}

	claims, err := h.tokens.DecodeUnsafe(token)
	if err != nil || claims.ExpiresAt == nil {
		response.WriteAuthError(w, auth.ErrInvalidToken())
		return
	}

	if err := h.revocations.Revoke(r.Context(), token, claims.ExpiresAt.Time); err != nil {
		h.logger.Error().Err(err).Msg("token revocation failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"revoked_until": claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}
