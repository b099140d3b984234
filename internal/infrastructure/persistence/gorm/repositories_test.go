// Package gorm provides integration-style tests for the repositories
// against an in-memory SQLite database.
package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/newsletter"
	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RepositoryTestSuite runs every repository against a fresh in-memory
// database per test
type RepositoryTestSuite struct {
	suite.Suite
	db *gorm.DB
}

// SetupTest opens a fresh in-memory database
func (suite *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), Migrate(db))
	suite.db = db
}

func (suite *RepositoryTestSuite) sampleRecipe() *recipe.Recipe {
	rec, err := recipe.NewRecipe("Chicken Tacos", uuid.New())
	require.NoError(suite.T(), err)
	rec.SetDescription("Quick weeknight dinner")
	rec.SetClassification("mexican", "dinner", []string{"quick", "weeknight"})
	amount := 2.0
	unit := "cup"
	require.NoError(suite.T(), rec.AddIngredient(recipe.Ingredient{Name: "shredded chicken", Amount: &amount, Unit: &unit}))
	require.NoError(suite.T(), rec.AddIngredient(recipe.Ingredient{Name: "corn tortillas", Notes: "warmed"}))
	require.NoError(suite.T(), rec.AddIngredient(recipe.Ingredient{Name: "salsa"}))
	require.NoError(suite.T(), rec.AddInstruction("Warm the tortillas"))
	require.NoError(suite.T(), rec.AddInstruction("Fill with chicken"))
	return rec
}

// TestRecipeRepository tests recipe and ingredient persistence
func (suite *RepositoryTestSuite) TestRecipeRepository() {
	suite.Run("CreateAndFind_ShouldRoundTripWithOrderedIngredients", func() {
		suite.SetupTest()

		// Arrange
		repo := NewRecipeRepository(suite.db, zaptest.NewLogger(suite.T()))
		rec := suite.sampleRecipe()
		ctx := context.Background()

		// Act
		require.NoError(suite.T(), repo.Create(ctx, rec))
		require.NoError(suite.T(), repo.SaveIngredients(ctx, rec.ID(), rec.Ingredients()))
		found, err := repo.FindByID(ctx, rec.ID())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), rec.ID(), found.ID())
		assert.Equal(suite.T(), "Chicken Tacos", found.Title())
		assert.Equal(suite.T(), []string{"Warm the tortillas", "Fill with chicken"}, found.Instructions())
		assert.Equal(suite.T(), []string{"quick", "weeknight"}, found.Tags())
		assert.Equal(suite.T(), recipe.StatusDraft, found.Status())

		ingredients := found.Ingredients()
		require.Len(suite.T(), ingredients, 3)
		assert.Equal(suite.T(), "shredded chicken", ingredients[0].Name)
		assert.Equal(suite.T(), "corn tortillas", ingredients[1].Name)
		assert.Equal(suite.T(), "salsa", ingredients[2].Name)
		for i, ing := range ingredients {
			assert.Equal(suite.T(), i, ing.OrderIndex)
		}
		require.NotNil(suite.T(), ingredients[0].Amount)
		assert.Equal(suite.T(), 2.0, *ingredients[0].Amount)
		require.NotNil(suite.T(), ingredients[0].Unit)
		assert.Equal(suite.T(), "cup", *ingredients[0].Unit)
		assert.Equal(suite.T(), "warmed", ingredients[1].Notes)
	})

	suite.Run("SaveIngredientsTwice_ShouldReplaceNotAppend", func() {
		suite.SetupTest()

		// Arrange
		repo := NewRecipeRepository(suite.db, zaptest.NewLogger(suite.T()))
		rec := suite.sampleRecipe()
		ctx := context.Background()
		require.NoError(suite.T(), repo.Create(ctx, rec))
		require.NoError(suite.T(), repo.SaveIngredients(ctx, rec.ID(), rec.Ingredients()))

		// Act
		replacement := []recipe.Ingredient{{Name: "tofu", OrderIndex: 0}}
		require.NoError(suite.T(), repo.SaveIngredients(ctx, rec.ID(), replacement))
		found, err := repo.FindByID(ctx, rec.ID())

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), found.Ingredients(), 1)
		assert.Equal(suite.T(), "tofu", found.Ingredients()[0].Name)
	})

	suite.Run("FindUnknownID_ShouldReturnRecipeNotFound", func() {
		suite.SetupTest()

		// Arrange
		repo := NewRecipeRepository(suite.db, zaptest.NewLogger(suite.T()))

		// Act
		found, err := repo.FindByID(context.Background(), uuid.New())

		// Assert
		assert.Nil(suite.T(), found)
		require.Error(suite.T(), err)
	})

	suite.Run("FindByAuthor_ShouldPaginate", func() {
		suite.SetupTest()

		// Arrange
		repo := NewRecipeRepository(suite.db, zaptest.NewLogger(suite.T()))
		authorID := uuid.New()
		ctx := context.Background()
		for _, title := range []string{"One", "Two", "Three"} {
			rec, err := recipe.NewRecipe(title, authorID)
			require.NoError(suite.T(), err)
			require.NoError(suite.T(), repo.Create(ctx, rec))
		}

		// Act
		page, total, err := repo.FindByAuthor(ctx, authorID, 0, 2)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3, total)
		assert.Len(suite.T(), page, 2)
	})
}

// TestImportRepository tests lineage rows and the analytics upsert
func (suite *RepositoryTestSuite) TestImportRepository() {
	suite.Run("CreateRecord_ShouldRoundTripMetadata", func() {
		suite.SetupTest()

		// Arrange
		repo := NewImportRepository(suite.db, zaptest.NewLogger(suite.T()))
		recipeID := uuid.New()
		parsed := (&importing.ParsedRecipe{
			Title:           "Beef Stew",
			Instructions:    []string{"Simmer"},
			ConfidenceScore: 0.95,
		}).Normalize()
		record := importing.NewImportRecord(recipeID, uuid.New(), importing.MethodWebpage,
			"https://www.allrecipes.com/stew", "raw html", parsed)
		ctx := context.Background()

		// Act
		require.NoError(suite.T(), repo.CreateRecord(ctx, record))
		found, err := repo.FindRecordByRecipe(ctx, recipeID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), record.ID, found.ID)
		assert.Equal(suite.T(), "allrecipes.com", found.SourceDomain)
		assert.Equal(suite.T(), importing.MethodWebpage, found.ImportMethod)
		assert.Equal(suite.T(), importing.ImportCompleted, found.ImportStatus)
		assert.Equal(suite.T(), 0.95, found.ConfidenceScore)
		assert.Equal(suite.T(), "raw html", found.OriginalContent)
		assert.Equal(suite.T(), 0.95, found.ImportMetadata["confidence"])
	})

	suite.Run("IncrementDaily_ShouldAggregateIntoOneRow", func() {
		suite.SetupTest()

		// Arrange
		repo := NewImportRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		day := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

		// Act: one success at 0.8, one failure at 0
		require.NoError(suite.T(), repo.IncrementDaily(ctx, day, importing.MethodText, "", true, 0.8))
		require.NoError(suite.T(), repo.IncrementDaily(ctx, day, importing.MethodText, "", false, 0))
		found, err := repo.FindDaily(ctx, day, importing.MethodText, "")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, found.TotalImports)
		assert.Equal(suite.T(), 1, found.SuccessfulImports)
		assert.Equal(suite.T(), 1, found.FailedImports)
		assert.InDelta(suite.T(), 0.4, found.AverageConfidence, 1e-9)
	})

	suite.Run("IncrementDaily_DifferentKeys_ShouldNotCollide", func() {
		suite.SetupTest()

		// Arrange
		repo := NewImportRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		// Act
		require.NoError(suite.T(), repo.IncrementDaily(ctx, day, importing.MethodText, "", true, 0.7))
		require.NoError(suite.T(), repo.IncrementDaily(ctx, day, importing.MethodWebpage, "allrecipes.com", true, 0.95))

		// Assert
		text, err := repo.FindDaily(ctx, day, importing.MethodText, "")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, text.TotalImports)

		web, err := repo.FindDaily(ctx, day, importing.MethodWebpage, "allrecipes.com")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, web.TotalImports)
		assert.InDelta(suite.T(), 0.95, web.AverageConfidence, 1e-9)
	})
}

// TestTranslationRepository tests the job claim and record upsert
func (suite *RepositoryTestSuite) TestTranslationRepository() {
	suite.Run("ClaimJob_ShouldBeExclusive", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		job, err := translation.NewJob(translation.ContentRecipe, uuid.New(), "es", translation.PriorityNormal)
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), repo.CreateJob(ctx, job))

		// Act
		claimed, err := repo.ClaimJob(ctx, job.ID())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), translation.JobProcessing, claimed.Status())

		// second claim finds the row but not in a claimable state
		_, err = repo.ClaimJob(ctx, job.ID())
		assert.Equal(suite.T(), translation.ErrNotPending, err)
	})

	suite.Run("ClaimFinishedJob_ShouldReportNotPending", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		job, err := translation.NewJob(translation.ContentRecipe, uuid.New(), "es", translation.PriorityNormal)
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), repo.CreateJob(ctx, job))

		claimed, err := repo.ClaimJob(ctx, job.ID())
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), claimed.Complete(3))
		require.NoError(suite.T(), repo.UpdateJob(ctx, claimed))

		// Act
		_, err = repo.ClaimJob(ctx, job.ID())

		// Assert
		assert.Equal(suite.T(), translation.ErrNotPending, err)
	})

	suite.Run("ClaimUnknownJob_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))

		// Act
		_, err := repo.ClaimJob(context.Background(), uuid.New())

		// Assert
		assert.Equal(suite.T(), translation.ErrJobNotFound, err)
	})

	suite.Run("UpdateJob_ShouldPersistCompletionState", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		job, err := translation.NewJob(translation.ContentRecipe, uuid.New(), "es", translation.PriorityHigh)
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), repo.CreateJob(ctx, job))

		claimed, err := repo.ClaimJob(ctx, job.ID())
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), claimed.Complete(5))

		// Act
		require.NoError(suite.T(), repo.UpdateJob(ctx, claimed))
		found, err := repo.FindJob(ctx, job.ID())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), translation.JobCompleted, found.Status())
		assert.Equal(suite.T(), 5, found.FieldCount())
		assert.NotNil(suite.T(), found.ProcessedAt())
	})

	suite.Run("UpsertRecord_ShouldOverwriteOnSameKey", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		contentID := uuid.New()

		first := &translation.Record{
			ID:              uuid.New(),
			ContentType:     translation.ContentRecipe,
			ContentID:       contentID,
			FieldName:       "title",
			OriginalText:    "Chicken Tacos",
			TranslatedText:  "Tacos de pollo",
			SourceLanguage:  "en",
			TargetLanguage:  "es",
			Status:          "completed",
			Provider:        "test-provider",
			ConfidenceScore: 0.8,
		}
		require.NoError(suite.T(), repo.UpsertRecord(ctx, first))

		// Act: re-translate the same field with a better result
		second := *first
		second.ID = uuid.New()
		second.TranslatedText = "Tacos de pollo desmenuzado"
		second.ConfidenceScore = 0.9
		require.NoError(suite.T(), repo.UpsertRecord(ctx, &second))

		records, err := repo.FindRecords(ctx, translation.ContentRecipe, contentID, "es")

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), records, 1)
		assert.Equal(suite.T(), "Tacos de pollo desmenuzado", records[0].TranslatedText)
		assert.Equal(suite.T(), 0.9, records[0].ConfidenceScore)
	})

	suite.Run("FindRecords_ShouldFilterByLanguage", func() {
		suite.SetupTest()

		// Arrange
		repo := NewTranslationRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		contentID := uuid.New()
		for _, lang := range []string{"es", "fr"} {
			rec := &translation.Record{
				ID:             uuid.New(),
				ContentType:    translation.ContentRecipe,
				ContentID:      contentID,
				FieldName:      "title",
				OriginalText:   "Toast",
				TranslatedText: "translated " + lang,
				SourceLanguage: "en",
				TargetLanguage: lang,
				Status:         "completed",
			}
			require.NoError(suite.T(), repo.UpsertRecord(ctx, rec))
		}

		// Act
		records, err := repo.FindRecords(ctx, translation.ContentRecipe, contentID, "fr")

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), records, 1)
		assert.Equal(suite.T(), "translated fr", records[0].TranslatedText)
	})
}

// TestNewsletterRepository tests newsletter persistence
func (suite *RepositoryTestSuite) TestNewsletterRepository() {
	suite.Run("CreateAndFind_ShouldRoundTrip", func() {
		suite.SetupTest()

		// Arrange
		repo := NewNewsletterRepository(suite.db, zaptest.NewLogger(suite.T()))
		ctx := context.Background()
		item, err := newsletter.New(uuid.New(), "Spring Menu", "What's new", "Full contents")
		require.NoError(suite.T(), err)

		// Act
		require.NoError(suite.T(), repo.Create(ctx, item))
		found, err := repo.FindByID(ctx, item.ID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), item.ID, found.ID)
		assert.Equal(suite.T(), "Spring Menu", found.Title)
		assert.Equal(suite.T(), "Full contents", found.Content)
	})

	suite.Run("FindUnknown_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		repo := NewNewsletterRepository(suite.db, zaptest.NewLogger(suite.T()))

		// Act
		found, err := repo.FindByID(context.Background(), uuid.New())

		// Assert
		assert.Nil(suite.T(), found)
		require.Error(suite.T(), err)
	})
}

// TestRepositoryTestSuite runs the test suite
func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
