package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/roomverse/platform/internal/model"
)

type mockAccountStore struct {
	mock.Mock
}

func (m *mockAccountStore) FindAdminByEmail(ctx context.Context, email string) (*model.Admin, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Admin), args.String(1), args.Error(2)
}

func (m *mockAccountStore) FindDeveloperByEmail(ctx context.Context, email string) (*model.Developer, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Developer), args.String(1), args.Error(2)
}

type mockKeyStore struct {
	mock.Mock
}

func (m *mockKeyStore) FindProject(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockKeyStore) CreateAPIKey(ctx context.Context, projectID, name string, scopes []string, expiresAt *time.Time) (*model.APIKey, error) {
	args := m.Called(ctx, projectID, name, scopes, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIKey), args.Error(1)
}

func (m *mockKeyStore) FindAPIKey(ctx context.Context, id, developerID string) (*model.APIKey, error) {
	args := m.Called(ctx, id, developerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIKey), args.Error(1)
}

func (m *mockKeyStore) UpdateAPIKey(ctx context.Context, id, developerID, name string, scopes []string) error {
	args := m.Called(ctx, id, developerID, name, scopes)
	return args.Error(0)
}

func (m *mockKeyStore) ListAPIKeys(ctx context.Context, projectID string) ([]model.APIKey, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.APIKey), args.Error(1)
}

func (m *mockKeyStore) RevokeAPIKey(ctx context.Context, id, developerID string) error {
	args := m.Called(ctx, id, developerID)
	return args.Error(0)
}

type mockGrantStore struct {
	mock.Mock
}

func (m *mockGrantStore) FindProject(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockGrantStore) FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *mockGrantStore) UpsertGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string, canAccess, canDownload bool, expiresAt *time.Time) (*model.ResourceGrant, error) {
	args := m.Called(ctx, kind, projectID, assetID, canAccess, canDownload, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceGrant), args.Error(1)
}

func (m *mockGrantStore) DeleteGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string) error {
	args := m.Called(ctx, kind, projectID, assetID)
	return args.Error(0)
}

type mockAssetStore struct {
	mock.Mock
}

func (m *mockAssetStore) FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

type mockAssetAdminStore struct {
	mock.Mock
}

func (m *mockAssetAdminStore) CreateAsset(ctx context.Context, a *model.Asset) (*model.Asset, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *mockAssetAdminStore) DeleteAsset(ctx context.Context, kind model.AssetKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) SignedURL(ctx context.Context, kind model.AssetKind, assetID string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, kind, assetID, ttl)
	return args.String(0), args.Error(1)
}
