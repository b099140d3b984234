package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/ports/inbound"
	"github.com/cookingwith/core/internal/ports/outbound"
)

// InlineDispatcher processes dispatched jobs in a goroutine within the
// same process. It is used in development and tests where no Redis is
// available; the conditional job claim keeps processing exactly-once
// even if a job is dispatched twice.
//
// The translation service both owns a dispatcher and is the processor
// behind this one, so the service is bound after construction to break
// the cycle.
type InlineDispatcher struct {
	mu      sync.RWMutex
	service inbound.TranslationService
	logger  *zap.Logger
	timeout time.Duration
}

// NewInlineDispatcher creates an in-process dispatcher with no
// processor bound yet
func NewInlineDispatcher(logger *zap.Logger) *InlineDispatcher {
	return &InlineDispatcher{
		logger:  logger.Named("inline-dispatcher"),
		timeout: 60 * time.Second,
	}
}

var _ outbound.JobDispatcher = (*InlineDispatcher)(nil)

// Bind attaches the translation service that will process dispatched jobs
func (d *InlineDispatcher) Bind(service inbound.TranslationService) {
	d.mu.Lock()
	d.service = service
	d.mu.Unlock()
}

// Dispatch schedules the job on a background goroutine and returns
// immediately. Jobs dispatched before Bind stay pending.
func (d *InlineDispatcher) Dispatch(ctx context.Context, jobID uuid.UUID) error {
	d.mu.RLock()
	service := d.service
	d.mu.RUnlock()

	if service == nil {
		d.logger.Warn("No processor bound, job stays pending",
			zap.String("job_id", jobID.String()))
		return nil
	}

	go func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if _, err := service.ProcessJob(jobCtx, jobID); err != nil {
			d.logger.Info("Inline translation job not processed",
				zap.String("job_id", jobID.String()),
				zap.Error(err))
		}
	}()
	return nil
}
