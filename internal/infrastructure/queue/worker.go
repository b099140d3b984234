package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/ports/inbound"
)

const popTimeout = 5 * time.Second

// Worker consumes translation job IDs from the Redis queue and drives
// them through the translation service. Each pop is processed to
// completion before the next; concurrency comes from running several
// workers.
type Worker struct {
	client    *redis.Client
	queueName string
	service   inbound.TranslationService
	logger    *zap.Logger
	count     int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker creates a translation worker pool
func NewWorker(client *redis.Client, queueName string, count int, service inbound.TranslationService, logger *zap.Logger) *Worker {
	if count < 1 {
		count = 1
	}
	return &Worker{
		client:    client,
		queueName: queueName,
		service:   service,
		logger:    logger.Named("translation-worker"),
		count:     count,
	}
}

// Start launches the worker goroutines
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	for i := 0; i < w.count; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}

	w.logger.Info("Translation workers started",
		zap.Int("count", w.count),
		zap.String("queue", w.queueName))
}

// Stop cancels the workers and waits for in-flight jobs to finish
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.logger.Info("Translation workers stopped")
}

func (w *Worker) run(ctx context.Context, index int) {
	defer w.wg.Done()
	logger := w.logger.With(zap.Int("worker", index))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result, err := w.client.BRPop(ctx, popTimeout, w.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			logger.Warn("Queue pop failed", zap.Error(err))
			// Back off so a dead Redis does not spin the loop
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		// BRPop returns [key, value]
		if len(result) != 2 {
			continue
		}

		jobID, err := uuid.Parse(result[1])
		if err != nil {
			logger.Warn("Discarding malformed job ID", zap.String("raw", result[1]))
			continue
		}

		w.process(ctx, logger, jobID)
	}
}

func (w *Worker) process(ctx context.Context, logger *zap.Logger, jobID uuid.UUID) {
	start := time.Now()
	result, err := w.service.ProcessJob(ctx, jobID)
	if err != nil {
		// Already-claimed and missing jobs are expected under
		// concurrent dispatch; the job row records real failures
		logger.Info("Translation job not processed",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return
	}

	logger.Info("Translation job processed",
		zap.String("job_id", jobID.String()),
		zap.Int("fields", result.TranslatedFields),
		zap.Duration("elapsed", time.Since(start)))
}
