package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomverse/platform/internal/model"
)

func TestRequireRole(t *testing.T) {
	admin := &AdminPrincipal{ID: "a1", Role: model.RoleAdmin}
	super := &AdminPrincipal{ID: "a2", Role: model.RoleSuperAdmin}

	tests := []struct {
		name     string
		p        Principal
		allowed  []model.AdminRole
		wantCode string
	}{
		{"nil principal", nil, []model.AdminRole{model.RoleAdmin}, CodeAuthenticationRequired},
		{"admin allowed", admin, []model.AdminRole{model.RoleAdmin, model.RoleSuperAdmin}, ""},
		{"super allowed", super, []model.AdminRole{model.RoleSuperAdmin}, ""},
		{"admin not super", admin, []model.AdminRole{model.RoleSuperAdmin}, CodeInsufficientPermissions},
		{"developer is not admin", &DeveloperPrincipal{ID: "d1"}, []model.AdminRole{model.RoleAdmin}, CodeInsufficientPermissions},
		{"api key is not admin", &APIKeyPrincipal{ID: "k1"}, []model.AdminRole{model.RoleAdmin}, CodeInsufficientPermissions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.p, tt.allowed...)
			if tt.wantCode == "" {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
		})
	}
}

func TestRequireScope(t *testing.T) {
	key := &APIKeyPrincipal{ID: "k1", Scopes: []string{"project:read"}}
	wildcard := &APIKeyPrincipal{ID: "k2", Scopes: []string{"*"}}

	tests := []struct {
		name     string
		p        Principal
		required []string
		wantCode string
	}{
		{"nil principal", nil, []string{"project:read"}, CodeAuthenticationRequired},
		{"bearer principal rejected", &AdminPrincipal{ID: "a1"}, []string{"project:read"}, CodeAPIKeyRequired},
		{"any-match succeeds", key, []string{"project:read", "project:write"}, ""},
		{"no intersection", key, []string{"apikey:read"}, CodeInsufficientScopes},
		{"wildcard satisfies anything", wildcard, []string{"apikey:read", "resource:write"}, ""},
		{"empty requirement passes", key, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireScope(tt.p, tt.required...)
			if tt.wantCode == "" {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
		})
	}
}

func TestRequireScope_EchoesRequiredScopes(t *testing.T) {
	key := &APIKeyPrincipal{ID: "k1", Scopes: []string{"project:read"}}
	err := RequireScope(key, "apikey:read", "apikey:write")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "apikey:read")
	assert.Contains(t, err.Message, "apikey:write")
}
