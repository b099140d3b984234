package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// TranslationRepository implements outbound.TranslationRepository using GORM
type TranslationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTranslationRepository creates a new translation repository
func NewTranslationRepository(db *gorm.DB, logger *zap.Logger) outbound.TranslationRepository {
	return &TranslationRepository{
		db:     db,
		logger: logger.Named("translation_repository"),
	}
}

// CreateJob persists a new pending job
func (r *TranslationRepository) CreateJob(ctx context.Context, job *translation.Job) error {
	if err := r.db.WithContext(ctx).Create(JobToModel(job)).Error; err != nil {
		r.logger.Error("Failed to create translation job",
			zap.String("job_id", job.ID().String()),
			zap.Error(err))
		return appErrors.NewDatabaseError("create translation job", err)
	}
	return nil
}

// FindJob retrieves a job by ID
func (r *TranslationRepository) FindJob(ctx context.Context, id uuid.UUID) (*translation.Job, error) {
	var model TranslationJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, translation.ErrJobNotFound
		}
		return nil, appErrors.NewDatabaseError("find translation job", err)
	}
	return ModelToJob(&model), nil
}

// ClaimJob flips a job from pending to processing with a conditional
// update. The status predicate plus the affected-row count make the
// claim exclusive: of two concurrent claimers exactly one sees a row
// flipped, the other gets ErrNotPending. A missing row is reported as
// ErrJobNotFound so callers can tell the two apart.
func (r *TranslationRepository) ClaimJob(ctx context.Context, id uuid.UUID) (*translation.Job, error) {
	res := r.db.WithContext(ctx).
		Model(&TranslationJobModel{}).
		Where("id = ? AND status = ?", id, string(translation.JobPending)).
		Updates(map[string]interface{}{
			"status":     string(translation.JobProcessing),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, appErrors.NewDatabaseError("claim translation job", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&TranslationJobModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return nil, appErrors.NewDatabaseError("check translation job", err)
		}
		if count > 0 {
			return nil, translation.ErrNotPending
		}
		return nil, translation.ErrJobNotFound
	}

	var model TranslationJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, appErrors.NewDatabaseError("load claimed job", err)
	}
	return ModelToJob(&model), nil
}

// UpdateJob saves a job's mutated state
func (r *TranslationRepository) UpdateJob(ctx context.Context, job *translation.Job) error {
	model := JobToModel(job)
	err := r.db.WithContext(ctx).
		Model(&TranslationJobModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"retry_count":   model.RetryCount,
			"error_message": model.ErrorMessage,
			"field_count":   model.FieldCount,
			"processed_at":  model.ProcessedAt,
			"updated_at":    model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Error("Failed to update translation job",
			zap.String("job_id", job.ID().String()),
			zap.Error(err))
		return appErrors.NewDatabaseError("update translation job", err)
	}
	return nil
}

// UpsertRecord writes one translated field, overwriting any existing row
// for the same (content type, content ID, field name, target language)
func (r *TranslationRepository) UpsertRecord(ctx context.Context, rec *translation.Record) error {
	model := RecordToModel(rec)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "content_type"},
			{Name: "content_id"},
			{Name: "field_name"},
			{Name: "target_language"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"original_text",
			"translated_text",
			"source_language",
			"status",
			"provider",
			"confidence_score",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Error("Failed to upsert translation record",
			zap.String("content_id", rec.ContentID.String()),
			zap.String("field", rec.FieldName),
			zap.Error(err))
		return appErrors.NewDatabaseError("upsert translation record", err)
	}
	return nil
}

// FindRecords retrieves all translated fields for one content item and
// target language
func (r *TranslationRepository) FindRecords(ctx context.Context, contentType translation.ContentType, contentID uuid.UUID, targetLanguage string) ([]translation.Record, error) {
	var models []TranslationRecordModel
	err := r.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ? AND target_language = ?",
			string(contentType), contentID, targetLanguage).
		Order("field_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError("find translation records", err)
	}

	records := make([]translation.Record, 0, len(models))
	for i := range models {
		records = append(records, ModelToRecord(&models[i]))
	}
	return records, nil
}
