package recipe

import "errors"

// Value Objects - Immutable objects that describe aspects of the domain

// DefaultServings is applied when an imported recipe does not state one
const DefaultServings = 4

// Ingredient represents an ingredient in a recipe. Amount and Unit are
// pointers because free-text imports often omit them.
type Ingredient struct {
	Name       string
	Amount     *float64
	Unit       *string
	Notes      string
	OrderIndex int
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if i.Amount != nil && *i.Amount < 0 {
		return errors.New("ingredient amount cannot be negative")
	}
	return nil
}

// DifficultyLevel represents recipe difficulty
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Valid reports whether the level is a known difficulty
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RecipeStatus represents the status of a recipe
type RecipeStatus string

const (
	StatusDraft     RecipeStatus = "draft"
	StatusPublished RecipeStatus = "published"
)
