package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError matches the production configuration so unique-key
// violations surface as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func testUser(email, userType string) *entity.User {
	return &entity.User{
		Email:        email,
		PasswordHash: "hashed_password",
		LastName:     "Dupont",
		FirstName:    "Marie",
		UserType:     userType,
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := testUser("test@example.com", entity.UserTypeTeacher)
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		require.NoError(t, repo.Create(context.Background(), testUser("dup@example.com", entity.UserTypeTeacher)))

		// Same email, everything else different: still a constraint violation.
		second := testUser("dup@example.com", entity.UserTypeStudent)
		second.LastName = "Martin"
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)

	created := testUser("find@example.com", entity.UserTypeStudent)
	require.NoError(t, repo.Create(context.Background(), created))

	t.Run("found", func(t *testing.T) {
		got, err := repo.FindByEmail(context.Background(), "find@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, entity.UserTypeStudent, got.UserType)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)

	created := testUser("byid@example.com", entity.UserTypeTeacher)
	require.NoError(t, repo.Create(context.Background(), created))

	t.Run("found", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "byid@example.com", got.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 9999)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_CountByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("t1@example.com", entity.UserTypeTeacher)))
	require.NoError(t, repo.Create(ctx, testUser("s1@example.com", entity.UserTypeStudent)))
	require.NoError(t, repo.Create(ctx, testUser("s2@example.com", entity.UserTypeStudent)))

	teachers, err := repo.CountByType(ctx, entity.UserTypeTeacher)
	require.NoError(t, err)
	students, err := repo.CountByType(ctx, entity.UserTypeStudent)
	require.NoError(t, err)

	assert.Equal(t, int64(1), teachers)
	assert.Equal(t, int64(2), students)
}

func TestUserGorm_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("a@example.com", entity.UserTypeTeacher)))
	require.NoError(t, repo.Create(ctx, testUser("b@example.com", entity.UserTypeStudent)))

	require.NoError(t, repo.DeleteAll(ctx))

	teachers, err := repo.CountByType(ctx, entity.UserTypeTeacher)
	require.NoError(t, err)
	students, err := repo.CountByType(ctx, entity.UserTypeStudent)
	require.NoError(t, err)
	assert.Zero(t, teachers+students)
}

// Guards the concurrency contract: of two racing inserts with the same
// email, exactly one wins and the loser fails cleanly.
func TestUserGorm_ConcurrentDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	errA := repo.Create(ctx, testUser("race@example.com", entity.UserTypeTeacher))
	errB := repo.Create(ctx, testUser("race@example.com", entity.UserTypeTeacher))

	if errA == nil {
		assert.ErrorIs(t, errB, usecase.ErrEmailAlreadyExists)
	} else {
		assert.NoError(t, errB)
	}

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Where("email = ?", "race@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
