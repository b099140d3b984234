package translation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record stores one translated field of one content item. Records are
// keyed uniquely by (content type, content ID, field name, target
// language) so re-running a job overwrites rather than duplicates.
type Record struct {
	ID              uuid.UUID
	ContentType     ContentType
	ContentID       uuid.UUID
	FieldName       string
	OriginalText    string
	TranslatedText  string
	SourceLanguage  string
	TargetLanguage  string
	Status          string
	Provider        string
	ConfidenceScore float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stable field name builders. Index-suffixed names follow the same
// order index used at persistence time so names survive re-translation.

// InstructionField names one instruction step, e.g. "instructions_2"
func InstructionField(index int) string {
	return fmt.Sprintf("instructions_%d", index)
}

// IngredientField names one ingredient name, e.g. "ingredients_0"
func IngredientField(index int) string {
	return fmt.Sprintf("ingredients_%d", index)
}

// IngredientNotesField names one ingredient's notes
func IngredientNotesField(index int) string {
	return fmt.Sprintf("ingredient_notes_%d", index)
}
