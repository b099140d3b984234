package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookingwith/core/internal/domain/newsletter"
	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// NewsletterRepository implements outbound.NewsletterRepository using GORM
type NewsletterRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNewsletterRepository creates a new newsletter repository
func NewNewsletterRepository(db *gorm.DB, logger *zap.Logger) outbound.NewsletterRepository {
	return &NewsletterRepository{
		db:     db,
		logger: logger.Named("newsletter_repository"),
	}
}

// Create persists a newsletter
func (r *NewsletterRepository) Create(ctx context.Context, n *newsletter.Newsletter) error {
	if err := r.db.WithContext(ctx).Create(NewsletterToModel(n)).Error; err != nil {
		r.logger.Error("Failed to create newsletter",
			zap.String("newsletter_id", n.ID.String()),
			zap.Error(err))
		return appErrors.NewDatabaseError("create newsletter", err)
	}
	return nil
}

// FindByID retrieves a newsletter by ID
func (r *NewsletterRepository) FindByID(ctx context.Context, id uuid.UUID) (*newsletter.Newsletter, error) {
	var model NewsletterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewContentNotFoundError("newsletter", id.String())
		}
		return nil, appErrors.NewDatabaseError("find newsletter", err)
	}
	return ModelToNewsletter(&model), nil
}
