package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roomverse/platform/internal/model"
)

// ---------- FindAPIKeyByValue ----------

func TestFindAPIKeyByValue_Success(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	now := time.Now()
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"pk_raw"}).Return(&mockRow{
		scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "key-1"
			*(dest[1].(*string)) = "pk_raw"
			*(dest[2].(*string)) = "server key"
			*(dest[3].(*[]string)) = []string{"resource:read"}
			*(dest[4].(*model.KeyStatus)) = model.KeyActive
			*(dest[5].(*string)) = "proj-1"
			*(dest[8].(*time.Time)) = now
			*(dest[9].(*string)) = "proj-1"
			*(dest[10].(*string)) = "dev-1"
			*(dest[11].(*model.AccountStatus)) = model.AccountActive
			return nil
		},
	})

	row, err := s.FindAPIKeyByValue(ctx, "pk_raw")
	require.NoError(t, err)
	assert.Equal(t, "key-1", row.Key.ID)
	assert.Equal(t, "proj-1", row.ProjectID)
	assert.Equal(t, "dev-1", row.DeveloperID)
	assert.Equal(t, model.AccountActive, row.DeveloperStatus)
	db.AssertExpectations(t)
}

func TestFindAPIKeyByValue_NotFound(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"pk_missing"}).Return(&mockRow{
		scanFunc: func(dest ...any) error { return pgx.ErrNoRows },
	})

	_, err := s.FindAPIKeyByValue(ctx, "pk_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAPIKeyByValue_QueryError(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(&mockRow{
		scanFunc: func(dest ...any) error { return errors.New("connection reset") },
	})

	_, err := s.FindAPIKeyByValue(ctx, "pk_raw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "find api key")
}

// ---------- ListAPIKeys ----------

func TestListAPIKeys_Success(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	rows := newMockRows(func(dest ...any) error {
		*(dest[0].(*string)) = "key-1"
		*(dest[1].(*string)) = "pk_raw"
		*(dest[2].(*string)) = "server key"
		*(dest[3].(*[]string)) = []string{"*"}
		*(dest[4].(*model.KeyStatus)) = model.KeyActive
		*(dest[5].(*string)) = "proj-1"
		return nil
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"proj-1"}).Return(rows, nil)

	keys, err := s.ListAPIKeys(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "key-1", keys[0].ID)
}

// ---------- RevokeAPIKey ----------

func TestRevokeAPIKey_Success(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{model.KeyRevoked, "key-1", model.KeyActive, "dev-1"}).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	err := s.RevokeAPIKey(ctx, "key-1", "dev-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestRevokeAPIKey_NotOwnedOrAlreadyRevoked(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := s.RevokeAPIKey(ctx, "key-1", "dev-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or already revoked")
}

// ---------- TouchAPIKeyLastUsed ----------

func TestTouchAPIKeyLastUsed(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{"key-1"}).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	require.NoError(t, s.TouchAPIKeyLastUsed(ctx, "key-1"))
	db.AssertExpectations(t)
}

// ---------- FindAPIKey ----------

func TestFindAPIKey_Success(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"key-1", "dev-1"}).Return(&mockRow{
		scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "key-1"
			*(dest[1].(*string)) = "pk_raw"
			*(dest[2].(*string)) = "server key"
			*(dest[3].(*[]string)) = []string{"*"}
			*(dest[4].(*model.KeyStatus)) = model.KeyActive
			*(dest[5].(*string)) = "proj-1"
			return nil
		},
	})

	key, err := s.FindAPIKey(ctx, "key-1", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", key.ID)
	assert.Equal(t, "proj-1", key.ProjectID)
}

func TestFindAPIKey_NotOwned(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"key-1", "other-dev"}).Return(&mockRow{
		scanFunc: func(dest ...any) error { return pgx.ErrNoRows },
	})

	_, err := s.FindAPIKey(ctx, "key-1", "other-dev")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ---------- UpdateAPIKey ----------

func TestUpdateAPIKey_Success(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"renamed", []string{"resource:read"}, "key-1", model.KeyActive, "dev-1"},
	).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	err := s.UpdateAPIKey(ctx, "key-1", "dev-1", "renamed", []string{"resource:read"})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestUpdateAPIKey_RevokedKey(t *testing.T) {
	db := &mockDB{}
	s := New(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := s.UpdateAPIKey(ctx, "key-1", "dev-1", "renamed", []string{"*"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or not active")
}
