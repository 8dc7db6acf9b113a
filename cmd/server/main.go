package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KamalGanth/quarry-ops/internal/api"
	"github.com/KamalGanth/quarry-ops/internal/core/service"
	"github.com/KamalGanth/quarry-ops/internal/infrastructure/config"
	mongodb "github.com/KamalGanth/quarry-ops/internal/infrastructure/db/mongo"
	redisdb "github.com/KamalGanth/quarry-ops/internal/infrastructure/db/redis"
	"github.com/KamalGanth/quarry-ops/internal/infrastructure/export"
	"github.com/KamalGanth/quarry-ops/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	recordRepo := mongodb.NewRecordRepository(client, db)
	if err := recordRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("record index creation failed")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, log)
	if err := authService.EnsureBootstrapAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin creation failed")
	}
	if cfg.Bootstrap.DefaultAdminPassword() {
		log.Warn().
			Str("username", cfg.Bootstrap.AdminUsername).
			Msg("bootstrap admin still uses the default password; set BOOTSTRAP_ADMIN_PASSWORD")
	}

	sheets, err := export.NewExcelWriter(cfg.ExportDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ExportDir).Msg("export directory unavailable")
	}

	e := api.NewRouter(client, db, rdb, cfg.JWTSecret, sheets)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
