package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/api/request"
	"github.com/roomverse/platform/internal/api/response"
	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

// KeyStore is the subset of the store the API key handler depends on.
type KeyStore interface {
	FindProject(ctx context.Context, id string) (*model.Project, error)
	CreateAPIKey(ctx context.Context, projectID, name string, scopes []string, expiresAt *time.Time) (*model.APIKey, error)
	FindAPIKey(ctx context.Context, id, developerID string) (*model.APIKey, error)
	UpdateAPIKey(ctx context.Context, id, developerID, name string, scopes []string) error
	ListAPIKeys(ctx context.Context, projectID string) ([]model.APIKey, error)
	RevokeAPIKey(ctx context.Context, id, developerID string) error
}

// APIKey handles developer-scoped API key management.
type APIKey struct {
	store  KeyStore
	logger zerolog.Logger
}

// NewAPIKey creates a new APIKey handler.
func NewAPIKey(keys KeyStore, logger zerolog.Logger) *APIKey {
	return &APIKey{store: keys, logger: logger}
}

// Create generates a new API key for one of the developer's projects. The
// raw key is returned once in the response and never again.
func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	dev := auth.DeveloperFromContext(r.Context())
	if dev == nil {
		response.WriteAuthError(w, auth.ErrAuthenticationRequired())
		return
	}

	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.store.FindProject(r.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error().Err(err).Msg("project lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}
	if project.DeveloperID != dev.DeveloperID {
		response.WriteAuthError(w, auth.ErrInsufficientPermissions())
		return
	}

	var expiresAt *time.Time
	if req.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, req.ExpiresInDays)
		expiresAt = &t
	}

	key, err := h.store.CreateAPIKey(r.Context(), req.ProjectID, req.Name, req.Scopes, expiresAt)
	if err != nil {
		h.logger.Error().Err(err).Msg("api key create failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":         key.ID,
		"key":        key.Key,
		"name":       key.Name,
		"scopes":     key.Scopes,
		"project_id": key.ProjectID,
		"expires_at": key.ExpiresAt,
		"created_at": key.CreatedAt,
	})
}

// List lists the keys of one of the developer's projects. Raw key values
// are never included; only the short display prefix.
func (h *APIKey) List(w http.ResponseWriter, r *http.Request) {
	dev := auth.DeveloperFromContext(r.Context())
	if dev == nil {
		response.WriteAuthError(w, auth.ErrAuthenticationRequired())
		return
	}

	projectID, err := request.RequireID(chi.URLParam(r, "projectID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.store.FindProject(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error().Err(err).Msg("project lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}
	if project.DeveloperID != dev.DeveloperID {
		response.WriteAuthError(w, auth.ErrInsufficientPermissions())
		return
	}

	keys, err := h.store.ListAPIKeys(r.Context(), projectID)
	if err != nil {
		h.logger.Error().Err(err).Msg("api key list failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	items := make([]map[string]any, 0, len(keys))
	for i := range keys {
		k := &keys[i]
		items = append(items, map[string]any{
			"id":           k.ID,
			"key_prefix":   k.DisplayPrefix(),
			"name":         k.Name,
			"scopes":       k.Scopes,
			"status":       k.Status,
			"expires_at":   k.ExpiresAt,
			"last_used_at": k.LastUsedAt,
			"created_at":   k.CreatedAt,
		})
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Get returns one key's metadata, scoped to the developer's own projects.
// The raw key value is never included.
func (h *APIKey) Get(w http.ResponseWriter, r *http.Request) {
	dev := auth.DeveloperFromContext(r.Context())
	if dev == nil {
		response.WriteAuthError(w, auth.ErrAuthenticationRequired())
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := h.store.FindAPIKey(r.Context(), id, dev.DeveloperID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "api key not found")
			return
		}
		h.logger.Error().Err(err).Msg("api key lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"id":           key.ID,
		"key_prefix":   key.DisplayPrefix(),
		"name":         key.Name,
		"scopes":       key.Scopes,
		"status":       key.Status,
		"project_id":   key.ProjectID,
		"expires_at":   key.ExpiresAt,
		"last_used_at": key.LastUsedAt,
		"created_at":   key.CreatedAt,
	})
}

// Update replaces the name and scope list of an active key. The cached
// credential projection is short-lived, so scope edits take effect within
// the cache TTL without an explicit invalidation.
func (h *APIKey) Update(w http.ResponseWriter, r *http.Request) {
	dev := auth.DeveloperFromContext(r.Context())
	if dev == nil {
		response.WriteAuthError(w, auth.ErrAuthenticationRequired())
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateAPIKey(r.Context(), id, dev.DeveloperID, req.Name, req.Scopes); err != nil {
		response.WriteError(w, http.StatusNotFound, "api key not found or not active")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Revoke flips the key's status to REVOKED, scoped to the developer's own
// projects.
func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	dev := auth.DeveloperFromContext(r.Context())
	if dev == nil {
		response.WriteAuthError(w, auth.ErrAuthenticationRequired())
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.RevokeAPIKey(r.Context(), id, dev.DeveloperID); err != nil {
		response.WriteError(w, http.StatusNotFound, "api key not found or already revoked")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
