package gorm

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate runs auto-migration for all application models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&RecipeModel{},
		&RecipeIngredientModel{},
		&NewsletterModel{},
		&ImportRecordModel{},
		&ImportAnalyticsModel{},
		&TranslationJobModel{},
		&TranslationRecordModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
