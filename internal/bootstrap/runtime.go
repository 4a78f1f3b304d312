// Package bootstrap wires shared process dependencies for the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"stride/internal/cache"
	"stride/internal/config"
	"stride/internal/database"
	"stride/internal/middleware"
	"stride/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the process-wide dependencies shared by the binaries.
type Runtime struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime connects the database and Redis and starts tracing when enabled.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	middleware.InitMiddleware(cfg)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "stride-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	return &Runtime{
		Config:          cfg,
		DB:              db,
		Redis:           cache.GetClient(),
		shutdownTracing: shutdownTracing,
	}, nil
}

// Close releases the runtime's connections.
func (r *Runtime) Close(ctx context.Context) error {
	var firstErr error

	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			firstErr = err
		}
	}
	if sqlDB, err := r.DB.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil && firstErr == nil {
			firstErr = cerr
		}
	}
	if r.Redis != nil {
		if rerr := r.Redis.Close(); rerr != nil && firstErr == nil {
			firstErr = rerr
		}
	}
	return firstErr
}
