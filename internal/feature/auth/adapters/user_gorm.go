// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
)

// uniqueViolation is the Postgres error code for a unique-key violation.
const uniqueViolation = "23505"

// userGorm is the GORM implementation of the UserRepository interface.
// It works against both the embedded SQLite store and Postgres.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm with the given gorm.DB connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts a user into the database.
// When a user with the same email already exists, it returns
// usecase.ErrEmailAlreadyExists. Concurrent inserts racing on the same email
// are serialized by the unique index; the loser gets the same error.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// isDuplicateKey recognizes unique-constraint violations from either driver:
// GORM's translated sentinel covers SQLite, pgconn covers raw Postgres errors.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// FindByEmail retrieves a user by email.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CountByType returns the number of users with the given role.
func (r *userGorm) CountByType(ctx context.Context, userType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("user_type = ?", userType).
		Count(&count).Error
	return count, err
}

// DeleteAll removes every user record. Only the offline maintenance tool
// calls this; no HTTP operation reaches it.
func (r *userGorm) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.User{}).Error
}
