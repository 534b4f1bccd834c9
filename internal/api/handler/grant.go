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

// GrantStore is the subset of the store the grant handler depends on.
type GrantStore interface {
	FindProject(ctx context.Context, id string) (*model.Project, error)
	FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error)
	UpsertGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string, canAccess, canDownload bool, expiresAt *time.Time) (*model.ResourceGrant, error)
	DeleteGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string) error
}

// Grant handles admin-scoped resource grant management.
type Grant struct {
	store  GrantStore
	logger zerolog.Logger
}

// NewGrant creates a new Grant handler.
func NewGrant(grants GrantStore, logger zerolog.Logger) *Grant {
	return &Grant{store: grants, logger: logger}
}

func grantKind(r *http.Request) (model.AssetKind, bool) {
	kind := model.AssetKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

// Upsert creates or replaces the grant for a (project, asset, kind)
// triple. A grant with can_download=true and can_access=false is accepted
// but the resolver enforces download-implies-access at check time.
func (h *Grant) Upsert(w http.ResponseWriter, r *http.Request) {
	kind, ok := grantKind(r)
	if !ok {
		response.WriteError(w, http.StatusBadRequest, "unknown asset kind")
		return
	}

	var req request.UpsertGrant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.store.FindProject(r.Context(), req.ProjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error().Err(err).Msg("project lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}
	if _, err := h.store.FindAsset(r.Context(), kind, req.AssetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.logger.Error().Err(err).Msg("asset lookup failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	grant, err := h.store.UpsertGrant(r.Context(), kind, req.ProjectID, req.AssetID, req.CanAccess, req.CanDownload, req.ExpiresAt)
	if err != nil {
		h.logger.Error().Err(err).Msg("grant upsert failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusOK, grant)
}

// Delete removes an explicit grant, reverting the project to the asset's
// default visibility.
func (h *Grant) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := grantKind(r)
	if !ok {
		response.WriteError(w, http.StatusBadRequest, "unknown asset kind")
		return
	}

	projectID, err := request.RequireID(r.URL.Query().Get("project_id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "missing project_id")
		return
	}
	assetID, err := request.RequireID(r.URL.Query().Get("asset_id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "missing asset_id")
		return
	}

	if err := h.store.DeleteGrant(r.Context(), kind, projectID, assetID); err != nil {
		response.WriteError(w, http.StatusNotFound, "grant not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
