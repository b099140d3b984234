// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/newsletter"
	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/google/uuid"
)

// RecipeRepository defines the interface for recipe persistence.
// Ingredients are saved separately from the recipe row so the import
// orchestrator can decouple their failure handling.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	SaveIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []recipe.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error)
}

// NewsletterRepository defines the interface for newsletter persistence
type NewsletterRepository interface {
	Create(ctx context.Context, n *newsletter.Newsletter) error
	FindByID(ctx context.Context, id uuid.UUID) (*newsletter.Newsletter, error)
}

// ImportRepository persists import lineage and daily analytics
type ImportRepository interface {
	// CreateRecord appends one lineage row; records are never mutated
	CreateRecord(ctx context.Context, rec *importing.ImportRecord) error
	FindRecordByRecipe(ctx context.Context, recipeID uuid.UUID) (*importing.ImportRecord, error)

	// IncrementDaily atomically upserts the (date, method, domain)
	// aggregate, bumping total plus either success or failure counters
	IncrementDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string, success bool, confidence float64) error
	FindDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string) (*importing.ImportAnalytics, error)
}

// TranslationRepository persists translation jobs and per-field records
type TranslationRepository interface {
	CreateJob(ctx context.Context, job *translation.Job) error
	FindJob(ctx context.Context, id uuid.UUID) (*translation.Job, error)

	// ClaimJob flips a job from pending to processing only if it is
	// currently pending, using an affected-row check so two concurrent
	// triggers cannot both claim the same job
	ClaimJob(ctx context.Context, id uuid.UUID) (*translation.Job, error)

	UpdateJob(ctx context.Context, job *translation.Job) error

	// UpsertRecord writes one translated field, idempotent on
	// (content type, content ID, field name, target language)
	UpsertRecord(ctx context.Context, rec *translation.Record) error
	FindRecords(ctx context.Context, contentType translation.ContentType, contentID uuid.UUID, targetLanguage string) ([]translation.Record, error)
}
