package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/api/request"
	"github.com/roomverse/platform/internal/api/response"
	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/model"
)

// AssetAdminStore is the subset of the store the admin asset handler
// depends on.
type AssetAdminStore interface {
	CreateAsset(ctx context.Context, a *model.Asset) (*model.Asset, error)
	DeleteAsset(ctx context.Context, kind model.AssetKind, id string) error
}

// AssetAdmin handles the admin-scoped asset write path: registering new
// assets and soft-deleting existing ones.
type AssetAdmin struct {
	store  AssetAdminStore
	logger zerolog.Logger
}

// NewAssetAdmin creates a new AssetAdmin handler.
func NewAssetAdmin(assets AssetAdminStore, logger zerolog.Logger) *AssetAdmin {
	return &AssetAdmin{store: assets, logger: logger}
}

// Create registers a new asset under the kind named in the URL.
func (h *AssetAdmin) Create(w http.ResponseWriter, r *http.Request) {
	kind := model.AssetKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		response.WriteError(w, http.StatusBadRequest, "unknown asset kind")
		return
	}

	var req request.CreateAsset
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.store.CreateAsset(r.Context(), &model.Asset{
		ResourceID:     req.ResourceID,
		Kind:           kind,
		Name:           req.Name,
		IsPremium:      req.IsPremium,
		IsFree:         req.IsFree,
		Price:          req.Price,
		OwnerProjectID: req.OwnerProjectID,
		Policy:         model.AccessPolicy(req.AccessPolicy),
	})
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("asset create failed")
		response.WriteAuthError(w, auth.ErrInternal())
		return
	}

	response.WriteJSON(w, http.StatusCreated, asset)
}

// Delete soft-deletes an asset. Already-deleted and unknown IDs both
// report not found.
func (h *AssetAdmin) Delete(w http.ResponseWriter, r *http.Request) {
	kind := model.AssetKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		response.WriteError(w, http.StatusBadRequest, "unknown asset kind")
		return
	}

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.DeleteAsset(r.Context(), kind, id); err != nil {
		response.WriteError(w, http.StatusNotFound, "asset not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
