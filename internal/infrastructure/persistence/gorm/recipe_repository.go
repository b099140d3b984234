package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// RecipeRepository implements outbound.RecipeRepository using GORM
type RecipeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB, logger *zap.Logger) outbound.RecipeRepository {
	return &RecipeRepository{
		db:     db,
		logger: logger.Named("recipe_repository"),
	}
}

// Create persists the recipe row. Ingredients are written separately
// via SaveIngredients so callers control their failure handling.
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)
	model.Ingredients = nil

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Error("Failed to create recipe",
			zap.String("recipe_id", rec.ID().String()),
			zap.Error(err))
		return appErrors.NewDatabaseError("create recipe", err)
	}
	return nil
}

// SaveIngredients replaces the ingredient rows for a recipe, keeping
// the order indexes assigned by the domain entity
func (r *RecipeRepository) SaveIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []recipe.Ingredient) error {
	rows := make([]RecipeIngredientModel, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, RecipeIngredientModel{
			RecipeID:   recipeID,
			Name:       ing.Name,
			Amount:     ing.Amount,
			Unit:       ing.Unit,
			Notes:      ing.Notes,
			OrderIndex: ing.OrderIndex,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		r.logger.Error("Failed to save ingredients",
			zap.String("recipe_id", recipeID.String()),
			zap.Int("count", len(rows)),
			zap.Error(err))
		return appErrors.NewDatabaseError("save ingredients", err)
	}
	return nil
}

// FindByID retrieves a recipe with its ingredients
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewRecipeNotFoundError(id.String())
		}
		return nil, appErrors.NewDatabaseError("find recipe", err)
	}
	return ModelToRecipe(&model), nil
}

// FindByAuthor retrieves recipes by author with pagination
func (r *RecipeRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	var models []RecipeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("author_id = ?", authorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, appErrors.NewDatabaseError("list recipes", err)
	}

	err := query.
		Preload("Ingredients").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list recipes", err)
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes, int(total), nil
}
