package translation

import (
	"context"

	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/pkg/errors"
)

// sourceLanguage is assumed for stored content until language detection
// exists; it matches the import pipeline's assumption
const sourceLanguage = "en"

// Field is one translatable unit of a content item, addressed by a
// stable name that preserves original order across re-translation
type Field struct {
	Name string
	Text string
}

// extractFields resolves the job's content and enumerates its
// translatable fields. Field lists are hand-enumerated per content
// type, not reflected.
func (s *Service) extractFields(ctx context.Context, job *translation.Job) ([]Field, error) {
	switch job.ContentType() {
	case translation.ContentRecipe:
		rec, err := s.recipes.FindByID(ctx, job.ContentID())
		if err != nil || rec == nil {
			return nil, errors.NewContentNotFoundError(string(job.ContentType()), job.ContentID().String())
		}

		var fields []Field
		appendField(&fields, "title", rec.Title())
		appendField(&fields, "description", rec.Description())
		appendField(&fields, "tips", rec.Tips())
		for i, step := range rec.Instructions() {
			appendField(&fields, translation.InstructionField(i), step)
		}
		for _, ing := range rec.Ingredients() {
			appendField(&fields, translation.IngredientField(ing.OrderIndex), ing.Name)
			appendField(&fields, translation.IngredientNotesField(ing.OrderIndex), ing.Notes)
		}
		return fields, nil

	case translation.ContentNewsletter:
		n, err := s.newsletters.FindByID(ctx, job.ContentID())
		if err != nil || n == nil {
			return nil, errors.NewContentNotFoundError(string(job.ContentType()), job.ContentID().String())
		}

		var fields []Field
		appendField(&fields, "title", n.Title)
		appendField(&fields, "excerpt", n.Excerpt)
		appendField(&fields, "content", n.Content)
		return fields, nil

	default:
		return nil, errors.NewValidationError("unknown content type")
	}
}

// appendField adds a field only when it has text to translate
func appendField(fields *[]Field, name, text string) {
	if text == "" {
		return
	}
	*fields = append(*fields, Field{Name: name, Text: text})
}
