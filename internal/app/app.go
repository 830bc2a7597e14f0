// Package app selects the storage and cache backends from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sdg1/budgetcoach/internal/cache"
	"github.com/sdg1/budgetcoach/internal/config"
	"github.com/sdg1/budgetcoach/internal/storage"
	"github.com/sdg1/budgetcoach/internal/storage/postgres"
	"github.com/sdg1/budgetcoach/internal/storage/sqlite"
)

const connectTimeout = 10 * time.Second

// OpenStore connects to Postgres when DATABASE_URL is set and to the SQLite
// development database otherwise.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		logger.Info("Storage initialized", "backend", store.Backend())
		return store, nil
	}

	store, err := sqlite.New(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	logger.Info("Storage initialized", "backend", store.Backend(), "database", cfg.SQLitePath)
	return store, nil
}

// OpenCache connects to Redis when REDIS_URL is set. An unreachable Redis
// degrades to the in-memory cache so local development keeps working.
func OpenCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) cache.Cache {
	if cfg.RedisURL == "" {
		logger.Info("Cache initialized", "backend", "memory")
		return cache.NewMemory()
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	c, err := cache.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("Redis unavailable, falling back to in-memory cache", "error", err)
		return cache.NewMemory()
	}
	logger.Info("Cache initialized", "backend", c.Backend())
	return c
}
