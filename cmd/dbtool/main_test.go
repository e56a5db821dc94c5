package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartpletude_backend/internal/feature/auth/adapters"
	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
	rosterusecase "smartpletude_backend/internal/feature/roster/usecase"
)

func setupTool(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &adapters.SessionModel{}))
	return db
}

func TestSeed(t *testing.T) {
	db := setupTool(t)
	users := adapters.NewUserGorm(db)
	authUC := usecase.NewAuthUsecase(users, adapters.NewSessionGorm(db))
	ctx := context.Background()

	require.NoError(t, seed(ctx, authUC))

	// Seeded accounts can log in with their documented passwords.
	for _, in := range seedAccounts {
		sess, err := authUC.Login(ctx, in.Email, in.Password, false)
		require.NoError(t, err, "seed account %s must be able to log in", in.Email)
		assert.Equal(t, in.UserType, sess.UserType)
	}

	// Seeding twice is safe.
	require.NoError(t, seed(ctx, authUC))
	teachers, err := users.CountByType(ctx, entity.UserTypeTeacher)
	require.NoError(t, err)
	assert.Equal(t, int64(1), teachers)
}

func TestInfo(t *testing.T) {
	db := setupTool(t)
	users := adapters.NewUserGorm(db)
	authUC := usecase.NewAuthUsecase(users, adapters.NewSessionGorm(db))
	ctx := context.Background()

	require.NoError(t, seed(ctx, authUC))
	require.NoError(t, info(ctx, rosterusecase.NewRosterUsecase(users)))
}

func TestReset(t *testing.T) {
	db := setupTool(t)
	users := adapters.NewUserGorm(db)
	sessions := adapters.NewSessionGorm(db)
	authUC := usecase.NewAuthUsecase(users, sessions)
	ctx := context.Background()

	_, err := authUC.Register(ctx, usecase.RegisterInput{
		Email:           "extra@example.com",
		Password:        "extra123",
		PasswordConfirm: "extra123",
		LastName:        "Durand",
		FirstName:       "Luc",
		UserType:        entity.UserTypeStudent,
	})
	require.NoError(t, err)

	require.NoError(t, reset(ctx, users, sessions, authUC))

	// Only the demo pair remains.
	_, err = authUC.Login(ctx, "extra@example.com", "extra123", false)
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	students, err := users.CountByType(ctx, entity.UserTypeStudent)
	require.NoError(t, err)
	teachers, err := users.CountByType(ctx, entity.UserTypeTeacher)
	require.NoError(t, err)
	assert.Equal(t, int64(1), students)
	assert.Equal(t, int64(1), teachers)
}
