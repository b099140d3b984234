// Package importing contains the domain model for the recipe import
// pipeline: parser output, lineage records and analytics aggregates.
package importing

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// ParsedRecipe is the transient, canonical output of the recipe parser,
// consumed by the import orchestrator. It is never persisted directly.
type ParsedRecipe struct {
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Ingredients     []ParsedIngredient `json:"ingredients"`
	Instructions    []string           `json:"instructions"`
	Tips            string             `json:"tips,omitempty"`
	PrepTimeMinutes int                `json:"prep_time_minutes"`
	CookTimeMinutes int                `json:"cook_time_minutes"`
	Servings        int                `json:"servings"`
	Difficulty      string             `json:"difficulty"`
	ImageURL        string             `json:"image_url,omitempty"`
	SourceURL       string             `json:"source_url,omitempty"`
	CuisineType     string             `json:"cuisine_type,omitempty"`
	MealType        string             `json:"meal_type,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	ConfidenceScore float64            `json:"confidence_score"`
}

// ParsedIngredient is one parsed ingredient line. Amount and Unit stay
// nil when the source gave only a name.
type ParsedIngredient struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount,omitempty"`
	Unit   *string  `json:"unit,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// UnmarshalJSON accepts either a bare string ("2 eggs") or a structured
// object, since import sources produce both shapes
func (i *ParsedIngredient) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		i.Name = name
		return nil
	}

	type plain ParsedIngredient
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = ParsedIngredient(p)
	return nil
}

// UntitledRecipe is the fallback title applied during normalization
const UntitledRecipe = "Untitled Recipe"

// MaxTitleLength matches the recipe entity's title bound; longer parsed
// titles are truncated rather than failing the import
const MaxTitleLength = 200

// DefaultConfidence is assigned to structured input the parser did not
// have to guess about
const DefaultConfidence = 0.9

// Normalize applies the canonical defaults: title, servings, difficulty,
// confidence clamped to [0,1], and never-nil ingredient/instruction
// slices. It mutates the receiver and returns it for chaining.
func (p *ParsedRecipe) Normalize() *ParsedRecipe {
	if p.Title == "" {
		p.Title = UntitledRecipe
	}
	if len(p.Title) > MaxTitleLength {
		p.Title = truncateTitle(p.Title)
	}
	if p.Ingredients == nil {
		p.Ingredients = []ParsedIngredient{}
	}
	if p.Instructions == nil {
		p.Instructions = []string{}
	}
	if p.Servings <= 0 {
		p.Servings = 4
	}
	if p.PrepTimeMinutes < 0 {
		p.PrepTimeMinutes = 0
	}
	if p.CookTimeMinutes < 0 {
		p.CookTimeMinutes = 0
	}
	switch p.Difficulty {
	case "easy", "medium", "hard":
	default:
		p.Difficulty = "medium"
	}
	if p.ConfidenceScore < 0 {
		p.ConfidenceScore = 0
	}
	if p.ConfidenceScore > 1 {
		p.ConfidenceScore = 1
	}
	return p
}

// truncateTitle cuts the title at the byte bound without splitting a
// multi-byte rune
func truncateTitle(title string) string {
	cut := MaxTitleLength
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return strings.TrimRight(title[:cut], " ")
}

// HasInstructions reports whether the parse produced at least one step.
// Imports with zero instructions are rejected before persistence.
func (p *ParsedRecipe) HasInstructions() bool {
	return len(p.Instructions) > 0
}
