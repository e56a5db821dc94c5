// Package di selects between alternative infrastructure implementations.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartpletude_backend/internal/feature/auth/adapters"
	"smartpletude_backend/internal/feature/auth/usecase"
	"smartpletude_backend/internal/platform/session"
)

// NewSessionStore creates a SessionStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL sessions table.
func NewSessionStore(rdb *redis.Client, db *gorm.DB) usecase.SessionStore {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return adapters.NewSessionGorm(db)
}
