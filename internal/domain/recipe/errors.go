package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrEmptyTitle        = errors.New("recipe title is required")
	ErrTitleTooLong      = errors.New("recipe title must not exceed 200 characters")
	ErrMissingAuthor     = errors.New("recipe author is required")
	ErrEmptyInstruction  = errors.New("instruction step cannot be empty")
	ErrNegativeTime      = errors.New("prep and cook times cannot be negative")
	ErrInvalidServings   = errors.New("servings must be greater than 0")
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	ErrNoInstructions    = errors.New("recipe must have at least one instruction")

	// State transition errors
	ErrInvalidStatusTransition = errors.New("invalid recipe status transition")
	ErrRecipeNotFound          = errors.New("recipe not found")
)
