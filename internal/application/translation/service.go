// Package translation provides the application layer for the deferred
// translation pipeline: enqueueing jobs and processing them against the
// translation provider.
package translation

import (
	"context"
	"time"

	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/internal/ports/inbound"
	"github.com/cookingwith/core/internal/ports/outbound"
	"github.com/cookingwith/core/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// record confidence by translation path; the per-field fallback is
// less trusted than a successful batch call
const (
	batchConfidence    = 0.9
	fallbackConfidence = 0.8
)

// Service implements the translation use cases
type Service struct {
	jobs        outbound.TranslationRepository
	recipes     outbound.RecipeRepository
	newsletters outbound.NewsletterRepository
	provider    outbound.TranslationProvider
	dispatcher  outbound.JobDispatcher
	metrics     outbound.TranslationMetrics
	logger      *zap.Logger
}

// NewService creates a new translation service
func NewService(
	jobs outbound.TranslationRepository,
	recipes outbound.RecipeRepository,
	newsletters outbound.NewsletterRepository,
	provider outbound.TranslationProvider,
	dispatcher outbound.JobDispatcher,
	metrics outbound.TranslationMetrics,
	logger *zap.Logger,
) inbound.TranslationService {
	return &Service{
		jobs:        jobs,
		recipes:     recipes,
		newsletters: newsletters,
		provider:    provider,
		dispatcher:  dispatcher,
		metrics:     metrics,
		logger:      logger.Named("translation-service"),
	}
}

// EnqueueJob creates a pending translation job and dispatches it
func (s *Service) EnqueueJob(ctx context.Context, cmd inbound.EnqueueTranslationCommand) (*translation.Job, error) {
	job, err := translation.NewJob(cmd.ContentType, cmd.ContentID, cmd.TargetLanguage, cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, errors.NewDatabaseError("create translation job", err)
	}

	if err := s.dispatcher.Dispatch(ctx, job.ID()); err != nil {
		s.logger.Warn("job dispatch failed, job stays pending",
			zap.String("job_id", job.ID().String()),
			zap.Error(err),
		)
	}

	return job, nil
}

// ProcessJob claims a pending job, translates the content's fields and
// advances the job state machine. Any failure after the claim marks the
// job failed with the captured message.
func (s *Service) ProcessJob(ctx context.Context, jobID uuid.UUID) (*inbound.ProcessResult, error) {
	job, err := s.jobs.ClaimJob(ctx, jobID)
	if err != nil {
		switch err {
		case translation.ErrJobNotFound:
			return nil, errors.NewJobNotFoundError(jobID.String())
		case translation.ErrNotPending:
			return nil, errors.NewJobNotClaimableError(jobID.String())
		}
		return nil, errors.Wrap(err, "failed to claim translation job")
	}

	s.logger.Info("processing translation job",
		zap.String("job_id", job.ID().String()),
		zap.String("content_type", string(job.ContentType())),
		zap.String("target_language", job.TargetLanguage()),
	)

	start := time.Now()

	fields, err := s.extractFields(ctx, job)
	if err != nil {
		s.failJob(ctx, job, err.Error())
		s.metrics.RecordTranslationJob(string(job.ContentType()), string(translation.JobFailed), 0, time.Since(start))
		return nil, err
	}

	translated := s.translateFields(ctx, fields, job.TargetLanguage())

	for _, tf := range translated {
		rec := &translation.Record{
			ID:              uuid.New(),
			ContentType:     job.ContentType(),
			ContentID:       job.ContentID(),
			FieldName:       tf.field.Name,
			OriginalText:    tf.field.Text,
			TranslatedText:  tf.text,
			SourceLanguage:  sourceLanguage,
			TargetLanguage:  job.TargetLanguage(),
			Status:          "completed",
			Provider:        s.provider.Name(),
			ConfidenceScore: tf.confidence,
		}
		if err := s.jobs.UpsertRecord(ctx, rec); err != nil {
			s.failJob(ctx, job, err.Error())
			s.metrics.RecordTranslationJob(string(job.ContentType()), string(translation.JobFailed), 0, time.Since(start))
			return nil, errors.NewDatabaseError("save translation record", err)
		}
	}

	if err := job.Complete(len(translated)); err != nil {
		return nil, errors.Wrap(err, "failed to complete job")
	}
	if err := s.jobs.UpdateJob(ctx, job); err != nil {
		return nil, errors.NewDatabaseError("update translation job", err)
	}

	s.metrics.RecordTranslationJob(string(job.ContentType()), string(translation.JobCompleted), len(translated), time.Since(start))

	s.logger.Info("translation job completed",
		zap.String("job_id", job.ID().String()),
		zap.Int("translated_fields", len(translated)),
		zap.Int("requested_fields", len(fields)),
	)

	return &inbound.ProcessResult{TranslatedFields: len(translated)}, nil
}

type translatedField struct {
	field      Field
	text       string
	confidence float64
}

// translateFields calls the provider's batch endpoint once; on batch
// failure it degrades to per-field calls, silently dropping fields
// whose individual call also fails
func (s *Service) translateFields(ctx context.Context, fields []Field, targetLanguage string) []translatedField {
	if len(fields) == 0 {
		return nil
	}

	texts := make([]string, len(fields))
	for i, f := range fields {
		texts[i] = f.Text
	}

	results, err := s.provider.TranslateBatch(ctx, texts, targetLanguage, sourceLanguage)
	if err == nil && len(results) == len(fields) {
		translated := make([]translatedField, len(fields))
		for i, f := range fields {
			translated[i] = translatedField{field: f, text: results[i], confidence: batchConfidence}
		}
		return translated
	}

	s.logger.Warn("batch translation failed, falling back to per-field calls",
		zap.Int("fields", len(fields)),
		zap.Error(err),
	)
	s.metrics.RecordBatchFallback()

	var translated []translatedField
	for _, f := range fields {
		text, err := s.provider.TranslateOne(ctx, f.Text, targetLanguage, sourceLanguage)
		if err != nil {
			s.logger.Warn("field translation failed, skipping",
				zap.String("field", f.Name),
				zap.Error(err),
			)
			continue
		}
		translated = append(translated, translatedField{field: f, text: text, confidence: fallbackConfidence})
	}
	return translated
}

// failJob marks the job failed with the captured message, best-effort
func (s *Service) failJob(ctx context.Context, job *translation.Job, message string) {
	if err := job.Fail(message); err != nil {
		s.logger.Error("could not transition job to failed",
			zap.String("job_id", job.ID().String()),
			zap.Error(err),
		)
		return
	}
	if err := s.jobs.UpdateJob(ctx, job); err != nil {
		s.logger.Error("could not persist failed job state",
			zap.String("job_id", job.ID().String()),
			zap.Error(err),
		)
	}
}
