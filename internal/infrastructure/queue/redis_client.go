// Package queue provides the Redis-backed hand-off between the import
// pipeline and the translation worker. Dispatch pushes a job ID onto a
// list; workers block-pop and process. The queue carries only IDs, the
// job row in the database is the source of truth.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/infrastructure/config"
)

// NewRedisClient creates and pings a Redis client from configuration.
// It returns nil when Redis is disabled; consumers treat a nil client
// as "no queue".
func NewRedisClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enable {
		logger.Info("Redis disabled, translation jobs run in process")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.RedisAddr()),
		zap.Int("db", cfg.Redis.Database))

	return client, nil
}
