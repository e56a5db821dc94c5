package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
)

// newTestSession creates a session entity for testing.
func newTestSession(id string, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    1,
		UserType:  entity.UserTypeTeacher,
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	session := newTestSession("sess-1", time.Hour)
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.FindByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.UserType, got.UserType)
	assert.True(t, got.IsValid())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Revoke(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("sess-2", time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "sess-2"))

	got, err := repo.FindByID(ctx, "sess-2")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())
	assert.False(t, got.IsValid())

	t.Run("unknown session", func(t *testing.T) {
		err := repo.Revoke(ctx, "missing")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("live", time.Hour)))
	require.NoError(t, repo.Create(ctx, newTestSession("dead-1", -time.Minute)))
	require.NoError(t, repo.Create(ctx, newTestSession("dead-2", -time.Hour)))

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.FindByID(ctx, "live")
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, "dead-1")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}
