package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// ImportRepository implements outbound.ImportRepository using GORM
type ImportRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *gorm.DB, logger *zap.Logger) outbound.ImportRepository {
	return &ImportRepository{
		db:     db,
		logger: logger.Named("import_repository"),
	}
}

// CreateRecord appends one lineage row. Records are append-only.
func (r *ImportRepository) CreateRecord(ctx context.Context, rec *importing.ImportRecord) error {
	if err := r.db.WithContext(ctx).Create(ImportRecordToModel(rec)).Error; err != nil {
		r.logger.Error("Failed to create import record",
			zap.String("recipe_id", rec.RecipeID.String()),
			zap.Error(err))
		return appErrors.NewDatabaseError("create import record", err)
	}
	return nil
}

// FindRecordByRecipe retrieves the lineage row for a recipe
func (r *ImportRepository) FindRecordByRecipe(ctx context.Context, recipeID uuid.UUID) (*importing.ImportRecord, error) {
	var model ImportRecordModel
	err := r.db.WithContext(ctx).
		First(&model, "recipe_id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Import record")
		}
		return nil, appErrors.NewDatabaseError("find import record", err)
	}
	return ModelToImportRecord(&model), nil
}

// IncrementDaily upserts the (date, method, domain) daily aggregate in a
// single statement. The conflict branch bumps counters with SQL
// expressions rather than read-modify-write, so concurrent imports for
// the same key cannot lose updates. The running average folds the new
// confidence in against the previous total.
func (r *ImportRepository) IncrementDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string, success bool, confidence float64) error {
	day = importing.AnalyticsDay(day)

	successInc := 0
	failureInc := 0
	if success {
		successInc = 1
	} else {
		failureInc = 1
	}

	model := &ImportAnalyticsModel{
		Date:              day,
		ImportMethod:      string(method),
		SourceDomain:      domain,
		TotalImports:      1,
		SuccessfulImports: successInc,
		FailedImports:     failureInc,
		AverageConfidence: confidence,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "date"},
			{Name: "import_method"},
			{Name: "source_domain"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_imports":      gorm.Expr("total_imports + 1"),
			"successful_imports": gorm.Expr("successful_imports + ?", successInc),
			"failed_imports":     gorm.Expr("failed_imports + ?", failureInc),
			"average_confidence": gorm.Expr("(average_confidence * total_imports + ?) / (total_imports + 1)", confidence),
			"updated_at":         time.Now().UTC(),
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Error("Failed to increment daily analytics",
			zap.Time("day", day),
			zap.String("method", string(method)),
			zap.String("domain", domain),
			zap.Error(err))
		return appErrors.NewDatabaseError("increment analytics", err)
	}
	return nil
}

// FindDaily retrieves one daily aggregate row
func (r *ImportRepository) FindDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string) (*importing.ImportAnalytics, error) {
	var model ImportAnalyticsModel
	err := r.db.WithContext(ctx).
		Where("date = ? AND import_method = ? AND source_domain = ?",
			importing.AnalyticsDay(day), string(method), domain).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Import analytics")
		}
		return nil, appErrors.NewDatabaseError("find analytics", err)
	}
	return ModelToAnalytics(&model), nil
}
