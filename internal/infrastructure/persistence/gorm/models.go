// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	AuthorID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`

	Instructions StringSlice `gorm:"type:json"`
	Tips         string      `gorm:"type:text"`

	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`
	Servings        int `gorm:"default:4"`

	Difficulty string `gorm:"type:varchar(20);index"`

	ImageURL  string `gorm:"type:text"`
	SourceURL string `gorm:"type:text"`

	CuisineType string      `gorm:"type:varchar(50);index"`
	MealType    string      `gorm:"type:varchar(50);index"`
	Tags        StringSlice `gorm:"type:json"`

	Status         string     `gorm:"type:varchar(20);default:'draft';index"`
	Rating         float64    `gorm:"default:0"`
	VersionNumber  int        `gorm:"default:1"`
	ParentRecipeID *uuid.UUID `gorm:"type:char(36);index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID"`
}

// RecipeIngredientModel represents one ingredient row. The order index
// preserves the original sequence, which is semantically meaningful.
type RecipeIngredientModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Amount     *float64
	Unit       *string `gorm:"type:varchar(50)"`
	Notes      string  `gorm:"type:text"`
	OrderIndex int     `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// NewsletterModel represents the GORM model for newsletters
type NewsletterModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Excerpt   string    `gorm:"type:text"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// ImportRecordModel is the append-only lineage row for one import
type ImportRecordModel struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID        uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID          uuid.UUID `gorm:"type:char(36);not null;index"`
	SourceURL       string    `gorm:"type:text"`
	SourceDomain    string    `gorm:"type:varchar(255);index"`
	ImportMethod    string    `gorm:"type:varchar(20);not null;index"`
	OriginalContent string    `gorm:"type:text"`
	ImportMetadata  JSONField `gorm:"type:json"`
	ImportStatus    string    `gorm:"type:varchar(20);default:'completed'"`
	ConfidenceScore float64   `gorm:"default:0"`
	FieldMapping    JSONField `gorm:"type:json"`
	CreatedAt       time.Time `gorm:"index"`
}

// ImportAnalyticsModel is the daily aggregate keyed by
// (date, import method, source domain)
type ImportAnalyticsModel struct {
	ID                uuid.UUID `gorm:"type:char(36);primaryKey"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex:idx_analytics_key"`
	ImportMethod      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_analytics_key"`
	SourceDomain      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_analytics_key"`
	TotalImports      int       `gorm:"default:0"`
	SuccessfulImports int       `gorm:"default:0"`
	FailedImports     int       `gorm:"default:0"`
	AverageConfidence float64   `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TranslationJobModel represents the GORM model for translation jobs
type TranslationJobModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	ContentType    string    `gorm:"type:varchar(20);not null;index"`
	ContentID      uuid.UUID `gorm:"type:char(36);not null;index"`
	TargetLanguage string    `gorm:"type:varchar(10);not null"`
	Priority       string    `gorm:"type:varchar(10);default:'normal'"`
	Status         string    `gorm:"type:varchar(20);default:'pending';index"`
	RetryCount     int       `gorm:"default:0"`
	MaxRetries     int       `gorm:"default:3"`
	ErrorMessage   string    `gorm:"type:text"`
	FieldCount     int       `gorm:"default:0"`
	ProcessedAt    *time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TranslationRecordModel stores one translated field, unique per
// (content type, content ID, field name, target language) so re-runs
// overwrite rather than duplicate
type TranslationRecordModel struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	ContentType     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_translation_key"`
	ContentID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_translation_key"`
	FieldName       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_translation_key"`
	TargetLanguage  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_translation_key"`
	OriginalText    string    `gorm:"type:text"`
	TranslatedText  string    `gorm:"type:text"`
	SourceLanguage  string    `gorm:"type:varchar(10)"`
	Status          string    `gorm:"type:varchar(20);default:'completed'"`
	Provider        string    `gorm:"type:varchar(50)"`
	ConfidenceScore float64   `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONField custom type for handling JSON fields
type JSONField map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return json.Marshal(j)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeIngredientModel
func (r *RecipeIngredientModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for NewsletterModel
func (n *NewsletterModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ImportRecordModel
func (i *ImportRecordModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ImportAnalyticsModel
func (i *ImportAnalyticsModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for TranslationJobModel
func (t *TranslationJobModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for TranslationRecordModel
func (t *TranslationRecordModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (NewsletterModel) TableName() string {
	return "newsletters"
}

func (ImportRecordModel) TableName() string {
	return "import_records"
}

func (ImportAnalyticsModel) TableName() string {
	return "import_analytics"
}

func (TranslationJobModel) TableName() string {
	return "translation_jobs"
}

func (TranslationRecordModel) TableName() string {
	return "translation_records"
}
