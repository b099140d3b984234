package importing

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImportMethod identifies the source kind of an import
type ImportMethod string

const (
	MethodWebpage ImportMethod = "webpage"
	MethodImage   ImportMethod = "image"
	MethodText    ImportMethod = "text"
)

// Valid reports whether the method is one of the three known values
func (m ImportMethod) Valid() bool {
	switch m {
	case MethodWebpage, MethodImage, MethodText:
		return true
	}
	return false
}

// ImportStatus is recorded on lineage rows. Failures short-circuit before
// a record is written, so persisted records are always completed.
type ImportStatus string

const (
	ImportCompleted ImportStatus = "completed"
)

// ImportRecord is an append-only lineage row written exactly once per
// successful import and never mutated afterwards.
type ImportRecord struct {
	ID              uuid.UUID
	RecipeID        uuid.UUID
	UserID          uuid.UUID
	SourceURL       string
	SourceDomain    string
	ImportMethod    ImportMethod
	OriginalContent string
	ImportMetadata  map[string]interface{}
	ImportStatus    ImportStatus
	ConfidenceScore float64
	FieldMapping    map[string]interface{}
	CreatedAt       time.Time
}

// NewImportRecord builds the lineage record for a freshly persisted recipe
func NewImportRecord(recipeID, userID uuid.UUID, method ImportMethod, sourceURL, originalContent string, parsed *ParsedRecipe) *ImportRecord {
	return &ImportRecord{
		ID:              uuid.New(),
		RecipeID:        recipeID,
		UserID:          userID,
		SourceURL:       sourceURL,
		SourceDomain:    DomainOf(sourceURL),
		ImportMethod:    method,
		OriginalContent: originalContent,
		ImportMetadata: map[string]interface{}{
			"confidence":   parsed.ConfidenceScore,
			"cuisine_type": parsed.CuisineType,
			"meal_type":    parsed.MealType,
			"tags":         parsed.Tags,
		},
		ImportStatus:    ImportCompleted,
		ConfidenceScore: parsed.ConfidenceScore,
		FieldMapping: map[string]interface{}{
			"title":        parsed.Title != "" && parsed.Title != UntitledRecipe,
			"description":  parsed.Description != "",
			"ingredients":  len(parsed.Ingredients),
			"instructions": len(parsed.Instructions),
			"image_url":    parsed.ImageURL != "",
		},
		CreatedAt: time.Now().UTC(),
	}
}

// DomainOf extracts the hostname portion of a source URL for analytics
// grouping. Unparsable or empty URLs yield an empty domain.
func DomainOf(sourceURL string) string {
	if sourceURL == "" {
		return ""
	}
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
