package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"care_scheduler_backend/internal/config"
	"care_scheduler_backend/internal/database"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/internal/repositories/memory"
	"care_scheduler_backend/internal/router"
	"care_scheduler_backend/internal/services"
	"care_scheduler_backend/pkg/cache"
	"care_scheduler_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "console")
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	store, db, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	if db != nil {
		defer db.Close()
	}

	listCache, closeCache := openCache(cfg)
	defer closeCache()

	if cfg.BootstrapAdminEnabled() {
		created, err := services.NewAdminService(store.Users).BootstrapAdmin(context.Background(), cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin")
		}
		if created {
			utils.LogInfo("Bootstrap admin created", map[string]interface{}{"email": cfg.BootstrapAdminEmail})
		}
	}

	engine, err := router.NewEngine(router.Dependencies{
		Store:              store,
		Cache:              listCache,
		CacheTTL:           cfg.CacheTTL,
		Tokens:             utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "store": cfg.StoreDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		utils.LogInfo("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			utils.LogError(err, "Server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.LogError(err, "Graceful shutdown failed")
	}
	utils.LogInfo("Server stopped")
}

func openStore(cfg *config.Config) (*repositories.Store, *sql.DB, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		utils.LogInfo("Using in-memory store; data is lost on restart")
		return memory.NewStore(), nil, nil
	}
	db, err := database.InitDB(database.Settings{
		Host:        cfg.DBHost,
		Port:        cfg.DBPort,
		User:        cfg.DBUser,
		Password:    cfg.DBPassword,
		Name:        cfg.DBName,
		SSLMode:     cfg.DBSSLMode,
		ApplySchema: cfg.DBApplySchema,
	})
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewPostgresStore(db), db, nil
}

// openCache prefers Redis when REDIS_URL is set and falls back to a process-local cache.
func openCache(cfg *config.Config) (cache.Cache, func()) {
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(cfg.RedisURL, "care-scheduler")
		if err == nil {
			utils.LogInfo("Using Redis list cache")
			return rdb, func() { _ = rdb.Close() }
		}
		utils.LogError(err, "Redis unavailable, falling back to in-memory cache")
	}
	return cache.NewMemory(), func() {}
}
