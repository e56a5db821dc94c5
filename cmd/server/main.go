package main

import (
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"smartpletude_backend/internal/app/di"
	"smartpletude_backend/internal/app/router"
	"smartpletude_backend/internal/config"
	authadapters "smartpletude_backend/internal/feature/auth/adapters"
	authhandler "smartpletude_backend/internal/feature/auth/transport/handler"
	authusecase "smartpletude_backend/internal/feature/auth/usecase"
	pageshandler "smartpletude_backend/internal/feature/pages/transport/handler"
	rosterusecase "smartpletude_backend/internal/feature/roster/usecase"
	"smartpletude_backend/internal/platform/cache"
	platformdb "smartpletude_backend/internal/platform/db"
	platformredis "smartpletude_backend/internal/platform/redis"
	"smartpletude_backend/internal/platform/token"
)

// rosterCacheTTL bounds the staleness of the headcounts on the role pages.
const rosterCacheTTL = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.UsesDefaultSecret() {
		slog.Warn("SESSION_SECRET is not set; using the development default. Set a strong secret in production.")
	}

	// db
	conn, err := platformdb.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis: optional; sessions fall back to SQL and the roster cache is
	// bypassed when it is absent.
	var rdb *redisv9.Client
	if cfg.RedisAddr == "" {
		slog.Info("Redis not configured; sessions stored in SQL")
	} else if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable; sessions stored in SQL")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(conn)
	sessionStore := di.NewSessionStore(rdb, conn)
	cachedCounts := cache.NewCachingCountsRepository(rdb, rosterCacheTTL, userRepo, "roster")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionStore)
	rosterUC := rosterusecase.NewRosterUsecase(cachedCounts)

	// Cookie signing
	signer := token.NewSigner(cfg.SessionSecret)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, signer, cfg.CookieSecure)
	pagesH := pageshandler.NewPagesHandler(rosterUC)

	r := router.NewRouter(authH, pagesH, authUC, signer)

	if err := r.Run(cfg.HTTPAddress()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
