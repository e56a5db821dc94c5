// dbtool is the offline maintenance tool for the credential store.
// It drives the same repositories as the server; no seeding or reset logic
// is duplicated from the service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"smartpletude_backend/internal/config"
	"smartpletude_backend/internal/feature/auth/adapters"
	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
	rosterusecase "smartpletude_backend/internal/feature/roster/usecase"
	platformdb "smartpletude_backend/internal/platform/db"
)

// Demo accounts created by seed, matching the two roles.
var seedAccounts = []usecase.RegisterInput{
	{
		Email:           "teacher@smartpletude.info",
		Password:        "prof123",
		PasswordConfirm: "prof123",
		LastName:        "Dupont",
		FirstName:       "Marie",
		UserType:        entity.UserTypeTeacher,
	},
	{
		Email:           "student@smartpletude.info",
		Password:        "student123",
		PasswordConfirm: "student123",
		LastName:        "Martin",
		FirstName:       "Pierre",
		UserType:        entity.UserTypeStudent,
	},
}

func main() {
	cmd := flag.String("cmd", "info", "one of: init, seed, info, reset")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// OpenDB migrates the schema, which covers init by itself.
	conn, err := platformdb.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	users := adapters.NewUserGorm(conn)
	sessions := adapters.NewSessionGorm(conn)
	authUC := usecase.NewAuthUsecase(users, sessions)
	rosterUC := rosterusecase.NewRosterUsecase(users)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch *cmd {
	case "init":
		slog.Info("database initialized")
	case "seed":
		err = seed(ctx, authUC)
	case "info":
		err = info(ctx, rosterUC)
	case "reset":
		err = reset(ctx, users, sessions, authUC)
	default:
		slog.Error("unknown command", "cmd", *cmd)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "cmd", *cmd, "error", err)
		os.Exit(1)
	}
}

// registrar is the slice of the auth usecase the tool needs for seeding.
type registrar interface {
	Register(ctx context.Context, in usecase.RegisterInput) (uint, error)
}

// seed creates the demo accounts through the regular registration path, so
// they get the same validation and hashing as real signups.
func seed(ctx context.Context, auth registrar) error {
	for _, in := range seedAccounts {
		id, err := auth.Register(ctx, in)
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Info("seed account already present", "email", in.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", in.Email, err)
		}
		slog.Info("seed account created", "email", in.Email, "user_type", in.UserType, "user_id", id)
	}
	return nil
}

// headcounter is the slice of the roster usecase the tool needs for info.
type headcounter interface {
	Counts(ctx context.Context) (rosterusecase.Counts, error)
}

// info logs the per-role headcounts.
func info(ctx context.Context, roster headcounter) error {
	counts, err := roster.Counts(ctx)
	if err != nil {
		return err
	}
	slog.Info("database info",
		"total_users", counts.Total(),
		"students", counts.Students,
		"teachers", counts.Teachers,
	)
	return nil
}

// wiper is the slice of the repositories the tool needs for reset.
type wiper interface {
	DeleteAll(ctx context.Context) error
}

type sessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// reset wipes all users, sweeps expired sessions and re-seeds the demo
// accounts.
func reset(ctx context.Context, users wiper, sessions sessionSweeper, auth registrar) error {
	if err := users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	if n, err := sessions.DeleteExpired(ctx); err != nil {
		return fmt.Errorf("sweep sessions: %w", err)
	} else if n > 0 {
		slog.Info("expired sessions swept", "count", n)
	}
	slog.Info("users deleted; reseeding")
	return seed(ctx, auth)
}
