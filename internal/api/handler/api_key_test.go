package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

func ownedProject(developerID string) *model.Project {
	return &model.Project{ID: "proj-1", DeveloperID: developerID, Name: "Test Project"}
}

// --- Create ---

func TestAPIKeyCreate_NoPrincipal(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()

	h.Create(rec, newRequest(http.MethodPost, "/api/developer/api-keys", map[string]any{
		"project_id": "proj-1",
		"name":       "server key",
		"scopes":     []string{"resource:read"},
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyCreate_InvalidJSON(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequestRaw(http.MethodPost, "/api/developer/api-keys", "{bad json"), "dev-1")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "invalid JSON")
}

func TestAPIKeyCreate_MissingName(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPost, "/api/developer/api-keys", map[string]any{
		"project_id": "proj-1",
		"scopes":     []string{"resource:read"},
	}), "dev-1")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "validation error")
}

func TestAPIKeyCreate_ForeignProject(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("FindProject", mock.Anything, "proj-1").Return(ownedProject("someone-else"), nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPost, "/api/developer/api-keys", map[string]any{
		"project_id": "proj-1",
		"name":       "server key",
		"scopes":     []string{"resource:read"},
	}), "dev-1")

	h.Create(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	keys.AssertNotCalled(t, "CreateAPIKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAPIKeyCreate_Success(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("FindProject", mock.Anything, "proj-1").Return(ownedProject("dev-1"), nil)
	keys.On("CreateAPIKey", mock.Anything, "proj-1", "server key", []string{"resource:read"}, mock.Anything).
		Return(&model.APIKey{
			ID:        "key-1",
			Key:       model.KeyPrefix + "deadbeef",
			Name:      "server key",
			Scopes:    []string{"resource:read"},
			Status:    model.KeyActive,
			ProjectID: "proj-1",
		}, nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPost, "/api/developer/api-keys", map[string]any{
		"project_id": "proj-1",
		"name":       "server key",
		"scopes":     []string{"resource:read"},
	}), "dev-1")

	h.Create(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, model.KeyPrefix+"deadbeef", body["key"])
}

// --- List ---

func TestAPIKeyList_HidesRawKeys(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("FindProject", mock.Anything, "proj-1").Return(ownedProject("dev-1"), nil)
	keys.On("ListAPIKeys", mock.Anything, "proj-1").Return([]model.APIKey{{
		ID:        "key-1",
		Key:       model.KeyPrefix + "aaaabbbbccccdddd",
		Name:      "server key",
		Scopes:    []string{"resource:read"},
		Status:    model.KeyActive,
		ProjectID: "proj-1",
	}}, nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodGet, "/api/developer/projects/proj-1/api-keys", nil), "dev-1")
	r = withChiURLParam(r, "projectID", "proj-1")

	h.List(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), model.KeyPrefix+"aaaabbbbccccdddd")
	assert.Contains(t, rec.Body.String(), "key_prefix")
}

func TestAPIKeyList_EmptyProjectID(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodGet, "/api/developer/projects//api-keys", nil), "dev-1")
	r = withChiURLParam(r, "projectID", "")

	h.List(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "missing required ID")
}

// --- Revoke ---

func TestAPIKeyRevoke_EmptyID(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodDelete, "/api/developer/api-keys/", nil), "dev-1")
	r = withChiURLParam(r, "id", "")

	h.Revoke(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIKeyRevoke_Success(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("RevokeAPIKey", mock.Anything, validID, "dev-1").Return(nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodDelete, "/api/developer/api-keys/"+validID, nil), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Revoke(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAPIKeyRevoke_NotOwned(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("RevokeAPIKey", mock.Anything, validID, "dev-1").Return(store.ErrNotFound)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodDelete, "/api/developer/api-keys/"+validID, nil), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Revoke(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Get ---

func TestAPIKeyGet_Success(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("FindAPIKey", mock.Anything, validID, "dev-1").Return(&model.APIKey{
		ID:        validID,
		Key:       "pk_abcdef0123456789abcdef0123456789",
		Name:      "server key",
		Scopes:    []string{"resource:read"},
		Status:    model.KeyActive,
		ProjectID: "proj-1",
	}, nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodGet, "/api/developer/api-keys/"+validID, nil), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Get(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "key_prefix")
	assert.NotContains(t, rec.Body.String(), "pk_abcdef0123456789abcdef0123456789")
}

func TestAPIKeyGet_NotOwned(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("FindAPIKey", mock.Anything, validID, "dev-1").Return(nil, store.ErrNotFound)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodGet, "/api/developer/api-keys/"+validID, nil), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Get(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Update ---

func TestAPIKeyUpdate_MissingScopes(t *testing.T) {
	h := NewAPIKey(&mockKeyStore{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPatch, "/api/developer/api-keys/"+validID, map[string]any{
		"name": "renamed key",
	}), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "validation error")
}

func TestAPIKeyUpdate_Success(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("UpdateAPIKey", mock.Anything, validID, "dev-1", "renamed key", []string{"resource:read", "resource:download"}).Return(nil)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPatch, "/api/developer/api-keys/"+validID, map[string]any{
		"name":   "renamed key",
		"scopes": []string{"resource:read", "resource:download"},
	}), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	keys.AssertExpectations(t)
}

func TestAPIKeyUpdate_RevokedKey(t *testing.T) {
	keys := &mockKeyStore{}
	keys.On("UpdateAPIKey", mock.Anything, validID, "dev-1", "renamed key", []string{"*"}).Return(assert.AnError)
	h := NewAPIKey(keys, zerolog.Nop())
	rec := httptest.NewRecorder()
	r := withDeveloper(newRequest(http.MethodPatch, "/api/developer/api-keys/"+validID, map[string]any{
		"name":   "renamed key",
		"scopes": []string{"*"},
	}), "dev-1")
	r = withChiURLParam(r, "id", validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
