package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// RedisDispatcher implements outbound.JobDispatcher by pushing job IDs
// onto a Redis list. It never waits for processing; a worker pops the
// ID on its own schedule.
type RedisDispatcher struct {
	client    *redis.Client
	queueName string
	logger    *zap.Logger
}

// NewRedisDispatcher creates a new Redis-backed job dispatcher
func NewRedisDispatcher(client *redis.Client, queueName string, logger *zap.Logger) outbound.JobDispatcher {
	return &RedisDispatcher{
		client:    client,
		queueName: queueName,
		logger:    logger.Named("job-dispatcher"),
	}
}

// Dispatch enqueues a job ID for asynchronous processing
func (d *RedisDispatcher) Dispatch(ctx context.Context, jobID uuid.UUID) error {
	if err := d.client.LPush(ctx, d.queueName, jobID.String()).Err(); err != nil {
		d.logger.Error("Failed to dispatch translation job",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return appErrors.NewExternalServiceError("redis", err)
	}

	d.logger.Debug("Translation job dispatched",
		zap.String("job_id", jobID.String()),
		zap.String("queue", d.queueName))
	return nil
}
