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

// AssetStore is the subset of the store the asset handler depends on.
type AssetStore interface {
	FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error)
}

// DownloadSigner produces time-limited download URLs for asset payloads.
// The object-storage implementation lives outside this service.
type DownloadSigner interface {
	SignedURL(ctx context.Context, kind model.AssetKind, assetID string, ttl time.Duration) (string, error)
}

// Asset handles per-kind asset read and download endpoints. Permission
// checks run in the resource gate middleware before these handlers.
type Asset struct {
	store  AssetStore
	signer DownloadSigner
	logger zerolog.Logger
}

// NewAsset creates a new Asset handler.
func NewAsset(assets AssetStore, signer DownloadSigner, logger zerolog.Logger) *Asset {
	return &Asset{store: assets, signer: signer, logger: logger}
}

const downloadURLTTL = 15 * time.Minute

// Get returns the asset's metadata.
func (h *Asset) Get(kind model.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.RequireID(chi.URLParam(r, "id"))
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		asset, err := h.store.FindAsset(r.Context(), kind, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.WriteAuthError(w, auth.ErrResourceNotFound())
				return
			}
			h.logger.Error().Err(err).Msg("asset lookup failed")
			response.WriteAuthError(w, auth.ErrInternal())
			return
		}

		response.WriteJSON(w, http.StatusOK, asset)
	}
}

// Preview returns the public metadata subset for an asset. Served on the
// public allow-list, so no principal is attached.
func (h *Asset) Preview(kind model.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.RequireID(chi.URLParam(r, "id"))
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		asset, err := h.store.FindAsset(r.Context(), kind, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.WriteAuthError(w, auth.ErrResourceNotFound())
				return
			}
			h.logger.Error().Err(err).Msg("asset lookup failed")
			response.WriteAuthError(w, auth.ErrInternal())
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"id":          asset.ID,
			"resource_id": asset.ResourceID,
			"kind":        asset.Kind,
			"name":        asset.Name,
			"is_premium":  asset.IsPremium,
			"is_free":     asset.IsFree,
			"price":       asset.Price,
		})
	}
}

// Download returns a time-limited signed URL for the asset payload.
func (h *Asset) Download(kind model.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.RequireID(chi.URLParam(r, "id"))
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		url, err := h.signer.SignedURL(r.Context(), kind, id, downloadURLTTL)
		if err != nil {
			h.logger.Error().Err(err).Str("kind", string(kind)).Str("asset_id", id).Msg("download url signing failed")
			response.WriteAuthError(w, auth.ErrInternal())
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"url":        url,
			"expires_at": time.Now().Add(downloadURLTTL).UTC(),
		})
	}
}
