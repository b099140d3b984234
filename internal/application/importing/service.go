// Package importing provides the application layer for the recipe
// import pipeline. This implements the use cases defined in the inbound
// ports.
package importing

import (
	"context"
	"time"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/internal/ports/inbound"
	"github.com/cookingwith/core/internal/ports/outbound"
	"github.com/cookingwith/core/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultSourceLanguage is assumed for imported content until language
// detection exists
const defaultSourceLanguage = "en"

// RecipeParser dispatches a raw source to the strategy for its method
type RecipeParser interface {
	Parse(ctx context.Context, method importing.ImportMethod, source string) (*importing.ParsedRecipe, error)
}

// ImportService implements the recipe import use case
type ImportService struct {
	parser       RecipeParser
	recipes      outbound.RecipeRepository
	imports      outbound.ImportRepository
	translations outbound.TranslationRepository
	dispatcher   outbound.JobDispatcher
	logger       *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(
	parser RecipeParser,
	recipes outbound.RecipeRepository,
	imports outbound.ImportRepository,
	translations outbound.TranslationRepository,
	dispatcher outbound.JobDispatcher,
	logger *zap.Logger,
) inbound.ImportService {
	return &ImportService{
		parser:       parser,
		recipes:      recipes,
		imports:      imports,
		translations: translations,
		dispatcher:   dispatcher,
		logger:       logger.Named("import-service"),
	}
}

// ImportRecipe runs the full pipeline: validate, parse, persist recipe
// and ingredients, record lineage, optionally enqueue translation, and
// update analytics. Only input validation, parse failure and the
// primary recipe write are fatal; everything after the recipe row
// exists degrades gracefully.
func (s *ImportService) ImportRecipe(ctx context.Context, cmd inbound.ImportRecipeCommand) (*inbound.RecipeImportResult, error) {
	method := importing.ImportMethod(cmd.ImportType)
	if !method.Valid() {
		return nil, errors.NewUnsupportedImportError(cmd.ImportType)
	}
	if cmd.SourceData == "" {
		return nil, errors.NewValidationError("source_data is required")
	}
	if cmd.UserID == uuid.Nil {
		return nil, errors.NewValidationError("user_id is required")
	}

	s.logger.Info("importing recipe",
		zap.String("method", string(method)),
		zap.String("user_id", cmd.UserID.String()),
	)

	parsed, err := s.parser.Parse(ctx, method, cmd.SourceData)
	if err != nil {
		s.recordAnalytics(ctx, method, importing.DomainOf(sourceURLFor(method, cmd.SourceData)), false, 0)
		return nil, errors.Wrap(err, "failed to parse recipe source")
	}

	if !parsed.HasInstructions() {
		s.recordAnalytics(ctx, method, importing.DomainOf(parsed.SourceURL), false, parsed.ConfidenceScore)
		return nil, errors.NewParseError(string(method), nil)
	}

	// Normalize bounds every field an entity validates, so this only
	// trips on degenerate parser output (an empty ingredient name from
	// structured input, say). That is still a property of the source,
	// not of the system.
	rec, err := s.buildRecipe(parsed, cmd.UserID)
	if err != nil {
		s.recordAnalytics(ctx, method, importing.DomainOf(parsed.SourceURL), false, parsed.ConfidenceScore)
		return nil, errors.NewParseError(string(method), err)
	}

	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, errors.NewDatabaseError("create imported recipe", err)
	}

	// Ingredient failure is decoupled: the recipe row stands and the
	// import still succeeds.
	if err := s.recipes.SaveIngredients(ctx, rec.ID(), rec.Ingredients()); err != nil {
		s.logger.Error("failed to save imported ingredients",
			zap.String("recipe_id", rec.ID().String()),
			zap.Error(err),
		)
	}

	record := importing.NewImportRecord(rec.ID(), cmd.UserID, method, parsed.SourceURL, cmd.SourceData, parsed)
	if err := s.imports.CreateRecord(ctx, record); err != nil {
		s.logger.Error("failed to write import record",
			zap.String("recipe_id", rec.ID().String()),
			zap.Error(err),
		)
	}

	if cmd.AutoTranslate && cmd.TargetLanguage != "" && cmd.TargetLanguage != defaultSourceLanguage {
		s.enqueueTranslation(ctx, rec.ID(), cmd.TargetLanguage)
	}

	s.recordAnalytics(ctx, method, record.SourceDomain, true, parsed.ConfidenceScore)

	s.logger.Info("recipe imported",
		zap.String("recipe_id", rec.ID().String()),
		zap.String("title", rec.Title()),
		zap.Float64("confidence", parsed.ConfidenceScore),
	)

	return &inbound.RecipeImportResult{
		Recipe: rec,
		ImportInfo: inbound.ImportInfo{
			Method:     string(method),
			Confidence: parsed.ConfidenceScore,
			SourceURL:  parsed.SourceURL,
		},
	}, nil
}

// buildRecipe maps parser output onto a draft recipe entity
func (s *ImportService) buildRecipe(parsed *importing.ParsedRecipe, userID uuid.UUID) (*recipe.Recipe, error) {
	rec, err := recipe.NewRecipe(parsed.Title, userID)
	if err != nil {
		return nil, err
	}

	rec.SetDescription(parsed.Description)
	rec.SetTips(parsed.Tips)
	rec.SetMedia(parsed.ImageURL, parsed.SourceURL)
	rec.SetClassification(parsed.CuisineType, parsed.MealType, parsed.Tags)

	if err := rec.SetTiming(parsed.PrepTimeMinutes, parsed.CookTimeMinutes); err != nil {
		return nil, err
	}
	if err := rec.SetServings(parsed.Servings); err != nil {
		return nil, err
	}
	if err := rec.SetDifficulty(recipe.DifficultyLevel(parsed.Difficulty)); err != nil {
		return nil, err
	}

	for _, ing := range parsed.Ingredients {
		if err := rec.AddIngredient(recipe.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		}); err != nil {
			return nil, err
		}
	}

	for _, step := range parsed.Instructions {
		if err := rec.AddInstruction(step); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// enqueueTranslation creates a pending job and hands it to the
// dispatcher, fire-and-forget; neither failure blocks the import
func (s *ImportService) enqueueTranslation(ctx context.Context, recipeID uuid.UUID, targetLanguage string) {
	job, err := translation.NewJob(translation.ContentRecipe, recipeID, targetLanguage, translation.PriorityNormal)
	if err != nil {
		s.logger.Error("failed to create translation job",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.translations.CreateJob(ctx, job); err != nil {
		s.logger.Error("failed to enqueue translation job",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.dispatcher.Dispatch(ctx, job.ID()); err != nil {
		s.logger.Warn("translation job dispatch failed, job stays pending",
			zap.String("job_id", job.ID().String()),
			zap.Error(err),
		)
	}
}

// recordAnalytics upserts the daily aggregate; failures are logged only
func (s *ImportService) recordAnalytics(ctx context.Context, method importing.ImportMethod, domain string, success bool, confidence float64) {
	day := importing.AnalyticsDay(time.Now())
	if err := s.imports.IncrementDaily(ctx, day, method, domain, success, confidence); err != nil {
		s.logger.Warn("failed to update import analytics",
			zap.String("method", string(method)),
			zap.String("domain", domain),
			zap.Error(err),
		)
	}
}

// sourceURLFor returns the source URL an analytics row should be keyed
// by when parsing failed before a ParsedRecipe existed
func sourceURLFor(method importing.ImportMethod, sourceData string) string {
	if method == importing.MethodWebpage {
		return sourceData
	}
	return ""
}
