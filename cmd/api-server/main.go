package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"watchlog/database"
	"watchlog/internal/config"
	"watchlog/internal/logger"
	httpapi "watchlog/internal/microservices/http-api"
	"watchlog/internal/microservices/http-api/cache"
)

func main() {
	// 1. Load and validate config
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database
	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if cfg.SeedDefaultUser {
		if _, err := database.SeedDefaultUser(ctx, db); err != nil {
			log.Fatal("seeding default user failed", zap.Error(err))
		}
	}

	// 4. Optional Redis cache
	var watchlistCache cache.WatchlistCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("redis unavailable, watchlist cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			watchlistCache = cache.NewRedisWatchlistCache(rdb, cfg.CacheTTLDuration())
			log.Info("watchlist cache enabled", zap.Duration("ttl", cfg.CacheTTLDuration()))
		}
	}

	// 5. HTTP server
	router := httpapi.NewRouter(httpapi.Dependencies{
		Config: cfg,
		DB:     db,
		Logger: log,
		Cache:  watchlistCache,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.GoEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadConfig reads the environment and rejects values the server cannot run with.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
