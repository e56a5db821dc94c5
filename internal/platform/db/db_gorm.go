// Package db opens the relational store backing the credential and session
// tables.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartpletude_backend/internal/config"
	"smartpletude_backend/internal/feature/auth/adapters"
	"smartpletude_backend/internal/feature/auth/domain/entity"
)

const (
	connectDeadline = 60 * time.Second
	connectRetry    = 3 * time.Second
)

// OpenDB connects to the configured store and migrates the schema.
// With no DATABASE_URL it opens the embedded SQLite file; otherwise it dials
// Postgres, retrying for up to a minute so the server can start before the
// database is ready. TranslateError is on so unique-key violations surface
// as gorm.ErrDuplicatedKey on every driver.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.DatabaseURL == "" {
		slog.Info("using embedded sqlite store", "path", cfg.SQLitePath)
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	} else {
		deadline := time.Now().Add(connectDeadline)
		for {
			conn, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("db connect failed after %s: %w", connectDeadline, err)
			}
			slog.Warn("db connect failed, retrying", "error", err)
			time.Sleep(connectRetry)
		}
	}

	if err := conn.AutoMigrate(&entity.User{}, &adapters.SessionModel{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}
