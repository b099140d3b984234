package gorm

import (
	"sort"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/newsletter"
	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
)

// RecipeToModel converts a domain Recipe to its database model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	s := r.ToSnapshot()
	return &RecipeModel{
		ID:              s.ID,
		AuthorID:        s.AuthorID,
		Title:           s.Title,
		Description:     s.Description,
		Instructions:    StringSlice(s.Instructions),
		Tips:            s.Tips,
		PrepTimeMinutes: s.PrepTimeMinutes,
		CookTimeMinutes: s.CookTimeMinutes,
		Servings:        s.Servings,
		Difficulty:      string(s.Difficulty),
		ImageURL:        s.ImageURL,
		SourceURL:       s.SourceURL,
		CuisineType:     s.CuisineType,
		MealType:        s.MealType,
		Tags:            StringSlice(s.Tags),
		Status:          string(s.Status),
		Rating:          s.Rating,
		VersionNumber:   s.VersionNumber,
		ParentRecipeID:  s.ParentRecipeID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ModelToRecipe rebuilds a domain Recipe from its database model.
// Ingredient rows are re-sorted by order index before reconstitution
// so the original sequence survives regardless of query order.
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, 0, len(m.Ingredients))
	rows := append([]RecipeIngredientModel(nil), m.Ingredients...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].OrderIndex < rows[j].OrderIndex })
	for _, row := range rows {
		ingredients = append(ingredients, recipe.Ingredient{
			Name:       row.Name,
			Amount:     row.Amount,
			Unit:       row.Unit,
			Notes:      row.Notes,
			OrderIndex: row.OrderIndex,
		})
	}

	return recipe.Reconstitute(recipe.Snapshot{
		ID:              m.ID,
		AuthorID:        m.AuthorID,
		Title:           m.Title,
		Description:     m.Description,
		Ingredients:     ingredients,
		Instructions:    []string(m.Instructions),
		Tips:            m.Tips,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		Servings:        m.Servings,
		Difficulty:      recipe.DifficultyLevel(m.Difficulty),
		ImageURL:        m.ImageURL,
		SourceURL:       m.SourceURL,
		CuisineType:     m.CuisineType,
		MealType:        m.MealType,
		Tags:            []string(m.Tags),
		Status:          recipe.RecipeStatus(m.Status),
		Rating:          m.Rating,
		VersionNumber:   m.VersionNumber,
		ParentRecipeID:  m.ParentRecipeID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	})
}

// NewsletterToModel converts a domain Newsletter to its database model
func NewsletterToModel(n *newsletter.Newsletter) *NewsletterModel {
	return &NewsletterModel{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Title:     n.Title,
		Excerpt:   n.Excerpt,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ModelToNewsletter rebuilds a domain Newsletter from its database model
func ModelToNewsletter(m *NewsletterModel) *newsletter.Newsletter {
	return &newsletter.Newsletter{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		Title:     m.Title,
		Excerpt:   m.Excerpt,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ImportRecordToModel converts a lineage record to its database model
func ImportRecordToModel(r *importing.ImportRecord) *ImportRecordModel {
	return &ImportRecordModel{
		ID:              r.ID,
		RecipeID:        r.RecipeID,
		UserID:          r.UserID,
		SourceURL:       r.SourceURL,
		SourceDomain:    r.SourceDomain,
		ImportMethod:    string(r.ImportMethod),
		OriginalContent: r.OriginalContent,
		ImportMetadata:  JSONField(r.ImportMetadata),
		ImportStatus:    string(r.ImportStatus),
		ConfidenceScore: r.ConfidenceScore,
		FieldMapping:    JSONField(r.FieldMapping),
		CreatedAt:       r.CreatedAt,
	}
}

// ModelToImportRecord rebuilds a lineage record from its database model
func ModelToImportRecord(m *ImportRecordModel) *importing.ImportRecord {
	return &importing.ImportRecord{
		ID:              m.ID,
		RecipeID:        m.RecipeID,
		UserID:          m.UserID,
		SourceURL:       m.SourceURL,
		SourceDomain:    m.SourceDomain,
		ImportMethod:    importing.ImportMethod(m.ImportMethod),
		OriginalContent: m.OriginalContent,
		ImportMetadata:  map[string]interface{}(m.ImportMetadata),
		ImportStatus:    importing.ImportStatus(m.ImportStatus),
		ConfidenceScore: m.ConfidenceScore,
		FieldMapping:    map[string]interface{}(m.FieldMapping),
		CreatedAt:       m.CreatedAt,
	}
}

// ModelToAnalytics rebuilds a daily aggregate from its database model
func ModelToAnalytics(m *ImportAnalyticsModel) *importing.ImportAnalytics {
	return &importing.ImportAnalytics{
		ID:                m.ID,
		Date:              m.Date,
		ImportMethod:      importing.ImportMethod(m.ImportMethod),
		SourceDomain:      m.SourceDomain,
		TotalImports:      m.TotalImports,
		SuccessfulImports: m.SuccessfulImports,
		FailedImports:     m.FailedImports,
		AverageConfidence: m.AverageConfidence,
	}
}

// JobToModel converts a domain translation Job to its database model
func JobToModel(j *translation.Job) *TranslationJobModel {
	s := j.ToSnapshot()
	return &TranslationJobModel{
		ID:             s.ID,
		ContentType:    string(s.ContentType),
		ContentID:      s.ContentID,
		TargetLanguage: s.TargetLanguage,
		Priority:       string(s.Priority),
		Status:         string(s.Status),
		RetryCount:     s.RetryCount,
		MaxRetries:     s.MaxRetries,
		ErrorMessage:   s.ErrorMessage,
		FieldCount:     s.FieldCount,
		ProcessedAt:    s.ProcessedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ModelToJob rebuilds a domain translation Job from its database model
func ModelToJob(m *TranslationJobModel) *translation.Job {
	return translation.ReconstituteJob(translation.JobSnapshot{
		ID:             m.ID,
		ContentType:    translation.ContentType(m.ContentType),
		ContentID:      m.ContentID,
		TargetLanguage: m.TargetLanguage,
		Priority:       translation.Priority(m.Priority),
		Status:         translation.JobStatus(m.Status),
		RetryCount:     m.RetryCount,
		MaxRetries:     m.MaxRetries,
		ErrorMessage:   m.ErrorMessage,
		FieldCount:     m.FieldCount,
		ProcessedAt:    m.ProcessedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	})
}

// RecordToModel converts a per-field translation record to its database model
func RecordToModel(r *translation.Record) *TranslationRecordModel {
	return &TranslationRecordModel{
		ID:              r.ID,
		ContentType:     string(r.ContentType),
		ContentID:       r.ContentID,
		FieldName:       r.FieldName,
		OriginalText:    r.OriginalText,
		TranslatedText:  r.TranslatedText,
		SourceLanguage:  r.SourceLanguage,
		TargetLanguage:  r.TargetLanguage,
		Status:          r.Status,
		Provider:        r.Provider,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ModelToRecord rebuilds a per-field translation record from its database model
func ModelToRecord(m *TranslationRecordModel) translation.Record {
	return translation.Record{
		ID:              m.ID,
		ContentType:     translation.ContentType(m.ContentType),
		ContentID:       m.ContentID,
		FieldName:       m.FieldName,
		OriginalText:    m.OriginalText,
		TranslatedText:  m.TranslatedText,
		SourceLanguage:  m.SourceLanguage,
		TargetLanguage:  m.TargetLanguage,
		Status:          m.Status,
		Provider:        m.Provider,
		ConfidenceScore: m.ConfidenceScore,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
