package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

// mockCredentialStore implements CredentialStore for validator tests.
type mockCredentialStore struct {
	mock.Mock
}

func (m *mockCredentialStore) FindAPIKeyByValue(ctx context.Context, rawKey string) (*store.APIKeyAuthRow, error) {
	args := m.Called(ctx, rawKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKeyAuthRow), args.Error(1)
}

func (m *mockCredentialStore) FindAdmin(ctx context.Context, id string) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockCredentialStore) FindDeveloper(ctx context.Context, id string) (*model.Developer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *mockCredentialStore) TouchAPIKeyLastUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockResourceStore implements ResourceStore for resolver tests.
type mockResourceStore struct {
	mock.Mock
}

func (m *mockResourceStore) FindAsset(ctx context.Context, kind model.AssetKind, id string) (*model.Asset, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *mockResourceStore) FindGrant(ctx context.Context, kind model.AssetKind, projectID, assetID string) (*model.ResourceGrant, error) {
	args := m.Called(ctx, kind, projectID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceGrant), args.Error(1)
}
