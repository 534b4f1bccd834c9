package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context. Calls
// chain: an existing route context is reused.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// withDeveloper injects a developer principal into the request context.
func withDeveloper(r *http.Request, developerID string) *http.Request {
	p := &auth.DeveloperPrincipal{
		ID:          developerID,
		Email:       "dev@example.com",
		DeveloperID: developerID,
	}
	return r.WithContext(auth.ContextWithPrincipal(r.Context(), p))
}

// withAdmin injects an admin principal into the request context.
func withAdmin(r *http.Request, role model.AdminRole) *http.Request {
	p := &auth.AdminPrincipal{
		ID:    "test-admin-1",
		Email: "admin@example.com",
		Role:  role,
	}
	return r.WithContext(auth.ContextWithPrincipal(r.Context(), p))
}

const validID = "test-id-1"
