// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the application exposes to its callers
package inbound

import (
	"context"

	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/google/uuid"
)

// ImportRecipeCommand is the import request shape
type ImportRecipeCommand struct {
	ImportType     string
	SourceData     string
	UserID         uuid.UUID
	AutoTranslate  bool
	TargetLanguage string
}

// ImportInfo is the provenance block returned with an imported recipe
type ImportInfo struct {
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	SourceURL  string  `json:"source_url,omitempty"`
}

// RecipeImportResult is the outcome of a successful import
type RecipeImportResult struct {
	Recipe     *recipe.Recipe
	ImportInfo ImportInfo
}

// ImportService drives the recipe import pipeline
type ImportService interface {
	ImportRecipe(ctx context.Context, cmd ImportRecipeCommand) (*RecipeImportResult, error)
}

// EnqueueTranslationCommand requests deferred translation of one
// content item into one target language
type EnqueueTranslationCommand struct {
	ContentType    translation.ContentType
	ContentID      uuid.UUID
	TargetLanguage string
	Priority       translation.Priority
}

// ProcessResult reports how many fields a completed job translated
type ProcessResult struct {
	TranslatedFields int `json:"translated_fields"`
}

// TranslationService owns the translation job lifecycle
type TranslationService interface {
	EnqueueJob(ctx context.Context, cmd EnqueueTranslationCommand) (*translation.Job, error)
	ProcessJob(ctx context.Context, jobID uuid.UUID) (*ProcessResult, error)
}
