// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents the core recipe entity in our domain.
// Recipes are created as drafts by the import pipeline or the direct
// creation API and owned by their author.
type Recipe struct {
	id       uuid.UUID
	authorID uuid.UUID

	title       string
	description string

	ingredients  []Ingredient
	instructions []string
	tips         string

	prepTimeMinutes int
	cookTimeMinutes int
	servings        int
	difficulty      DifficultyLevel

	imageURL  string
	sourceURL string

	cuisineType string
	mealType    string
	tags        []string

	status         RecipeStatus
	rating         float64
	versionNumber  int
	parentRecipeID *uuid.UUID

	createdAt time.Time
	updatedAt time.Time
}

// NewRecipe creates a new draft Recipe with validation
func NewRecipe(title string, authorID uuid.UUID) (*Recipe, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > 200 {
		return nil, ErrTitleTooLong
	}
	if authorID == uuid.Nil {
		return nil, ErrMissingAuthor
	}

	now := time.Now().UTC()
	return &Recipe{
		id:            uuid.New(),
		authorID:      authorID,
		title:         title,
		ingredients:   []Ingredient{},
		instructions:  []string{},
		tags:          []string{},
		servings:      DefaultServings,
		difficulty:    DifficultyMedium,
		status:        StatusDraft,
		versionNumber: 1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID { return r.id }

// AuthorID returns the owning author's identifier
func (r *Recipe) AuthorID() uuid.UUID { return r.authorID }

// Title returns the recipe's title
func (r *Recipe) Title() string { return r.title }

// Description returns the recipe's description
func (r *Recipe) Description() string { return r.description }

// Ingredients returns the ordered ingredient list
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }

// Instructions returns the ordered instruction steps
func (r *Recipe) Instructions() []string { return r.instructions }

// Tips returns free-form cooking tips
func (r *Recipe) Tips() string { return r.tips }

// PrepTimeMinutes returns the preparation time in minutes
func (r *Recipe) PrepTimeMinutes() int { return r.prepTimeMinutes }

// CookTimeMinutes returns the cooking time in minutes
func (r *Recipe) CookTimeMinutes() int { return r.cookTimeMinutes }

// Servings returns the number of servings
func (r *Recipe) Servings() int { return r.servings }

// Difficulty returns the recipe's difficulty level
func (r *Recipe) Difficulty() DifficultyLevel { return r.difficulty }

// ImageURL returns the recipe's image URL
func (r *Recipe) ImageURL() string { return r.imageURL }

// SourceURL returns the webpage the recipe was imported from, if any
func (r *Recipe) SourceURL() string { return r.sourceURL }

// CuisineType returns the cuisine classification
func (r *Recipe) CuisineType() string { return r.cuisineType }

// MealType returns the meal classification
func (r *Recipe) MealType() string { return r.mealType }

// Tags returns the recipe's tags
func (r *Recipe) Tags() []string { return r.tags }

// Status returns the recipe status
func (r *Recipe) Status() RecipeStatus { return r.status }

// Rating returns the aggregate rating
func (r *Recipe) Rating() float64 { return r.rating }

// VersionNumber returns the recipe version, starting at 1
func (r *Recipe) VersionNumber() int { return r.versionNumber }

// ParentRecipeID returns the forked-from recipe ID, if any
func (r *Recipe) ParentRecipeID() *uuid.UUID { return r.parentRecipeID }

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time { return r.updatedAt }

// SetDescription sets the recipe description
func (r *Recipe) SetDescription(description string) {
	r.description = description
	r.touch()
}

// SetTips sets free-form cooking tips
func (r *Recipe) SetTips(tips string) {
	r.tips = tips
	r.touch()
}

// AddIngredient appends an ingredient, preserving insertion order.
// The order index is assigned from the current list length so the
// original sequence round-trips through persistence.
func (r *Recipe) AddIngredient(ingredient Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}

	ingredient.OrderIndex = len(r.ingredients)
	r.ingredients = append(r.ingredients, ingredient)
	r.touch()
	return nil
}

// AddInstruction appends an instruction step
func (r *Recipe) AddInstruction(step string) error {
	if step == "" {
		return ErrEmptyInstruction
	}

	r.instructions = append(r.instructions, step)
	r.touch()
	return nil
}

// SetTiming sets preparation and cooking times in minutes
func (r *Recipe) SetTiming(prepMinutes, cookMinutes int) error {
	if prepMinutes < 0 || cookMinutes < 0 {
		return ErrNegativeTime
	}
	r.prepTimeMinutes = prepMinutes
	r.cookTimeMinutes = cookMinutes
	r.touch()
	return nil
}

// SetServings sets the number of servings
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}
	r.servings = servings
	r.touch()
	return nil
}

// SetDifficulty sets the difficulty level
func (r *Recipe) SetDifficulty(level DifficultyLevel) error {
	if !level.Valid() {
		return ErrInvalidDifficulty
	}
	r.difficulty = level
	r.touch()
	return nil
}

// SetMedia sets the image and source URLs
func (r *Recipe) SetMedia(imageURL, sourceURL string) {
	r.imageURL = imageURL
	r.sourceURL = sourceURL
	r.touch()
}

// SetClassification sets cuisine type, meal type and tags
func (r *Recipe) SetClassification(cuisineType, mealType string, tags []string) {
	r.cuisineType = cuisineType
	r.mealType = mealType
	if tags == nil {
		tags = []string{}
	}
	r.tags = tags
	r.touch()
}

// Publish moves a draft recipe to published
func (r *Recipe) Publish() error {
	if r.status != StatusDraft {
		return ErrInvalidStatusTransition
	}
	if len(r.instructions) == 0 {
		return ErrNoInstructions
	}

	r.status = StatusPublished
	r.touch()
	return nil
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now().UTC()
}

// Snapshot is a flat view of a Recipe used by persistence mappers
type Snapshot struct {
	ID              uuid.UUID
	AuthorID        uuid.UUID
	Title           string
	Description     string
	Ingredients     []Ingredient
	Instructions    []string
	Tips            string
	PrepTimeMinutes int
	CookTimeMinutes int
	Servings        int
	Difficulty      DifficultyLevel
	ImageURL        string
	SourceURL       string
	CuisineType     string
	MealType        string
	Tags            []string
	Status          RecipeStatus
	Rating          float64
	VersionNumber   int
	ParentRecipeID  *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToSnapshot returns a flat copy of the recipe's state
func (r *Recipe) ToSnapshot() Snapshot {
	return Snapshot{
		ID:              r.id,
		AuthorID:        r.authorID,
		Title:           r.title,
		Description:     r.description,
		Ingredients:     r.ingredients,
		Instructions:    r.instructions,
		Tips:            r.tips,
		PrepTimeMinutes: r.prepTimeMinutes,
		CookTimeMinutes: r.cookTimeMinutes,
		Servings:        r.servings,
		Difficulty:      r.difficulty,
		ImageURL:        r.imageURL,
		SourceURL:       r.sourceURL,
		CuisineType:     r.cuisineType,
		MealType:        r.mealType,
		Tags:            r.tags,
		Status:          r.status,
		Rating:          r.rating,
		VersionNumber:   r.versionNumber,
		ParentRecipeID:  r.parentRecipeID,
		CreatedAt:       r.createdAt,
		UpdatedAt:       r.updatedAt,
	}
}

// Reconstitute rebuilds a Recipe from a persisted snapshot without
// re-running creation invariants
func Reconstitute(s Snapshot) *Recipe {
	ingredients := s.Ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	instructions := s.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Recipe{
		id:              s.ID,
		authorID:        s.AuthorID,
		title:           s.Title,
		description:     s.Description,
		ingredients:     ingredients,
		instructions:    instructions,
		tips:            s.Tips,
		prepTimeMinutes: s.PrepTimeMinutes,
		cookTimeMinutes: s.CookTimeMinutes,
		servings:        s.Servings,
		difficulty:      s.Difficulty,
		imageURL:        s.ImageURL,
		sourceURL:       s.SourceURL,
		cuisineType:     s.CuisineType,
		mealType:        s.MealType,
		tags:            tags,
		status:          s.Status,
		rating:          s.Rating,
		versionNumber:   s.VersionNumber,
		parentRecipeID:  s.ParentRecipeID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}
