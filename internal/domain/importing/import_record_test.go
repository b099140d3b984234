package importing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ImportRecordTestSuite covers lineage records and analytics helpers
type ImportRecordTestSuite struct {
	suite.Suite
}

// TestImportMethodValidation tests the known method set
func (suite *ImportRecordTestSuite) TestImportMethodValidation() {
	suite.Run("KnownMethods_ShouldBeValid", func() {
		assert.True(suite.T(), MethodWebpage.Valid())
		assert.True(suite.T(), MethodImage.Valid())
		assert.True(suite.T(), MethodText.Valid())
	})

	suite.Run("UnknownMethod_ShouldBeInvalid", func() {
		assert.False(suite.T(), ImportMethod("video").Valid())
		assert.False(suite.T(), ImportMethod("").Valid())
	})
}

// TestNewImportRecord tests lineage row construction
func (suite *ImportRecordTestSuite) TestNewImportRecord() {
	suite.Run("ParsedRecipe_ShouldProduceCompletedRecordWithFieldMapping", func() {
		// Arrange
		recipeID := uuid.New()
		userID := uuid.New()
		parsed := &ParsedRecipe{
			Title:           "Beef Stew",
			Description:     "Slow cooked",
			Ingredients:     []ParsedIngredient{{Name: "beef"}, {Name: "carrots"}},
			Instructions:    []string{"Brown the beef", "Simmer"},
			ImageURL:        "https://example.com/stew.jpg",
			ConfidenceScore: 0.95,
		}

		// Act
		record := NewImportRecord(recipeID, userID, MethodWebpage, "https://www.Example.com/stew", "raw html", parsed)

		// Assert
		require.NotNil(suite.T(), record)
		assert.NotEqual(suite.T(), uuid.Nil, record.ID)
		assert.Equal(suite.T(), recipeID, record.RecipeID)
		assert.Equal(suite.T(), userID, record.UserID)
		assert.Equal(suite.T(), ImportCompleted, record.ImportStatus)
		assert.Equal(suite.T(), "example.com", record.SourceDomain)
		assert.Equal(suite.T(), 0.95, record.ConfidenceScore)
		assert.Equal(suite.T(), "raw html", record.OriginalContent)

		assert.Equal(suite.T(), true, record.FieldMapping["title"])
		assert.Equal(suite.T(), true, record.FieldMapping["description"])
		assert.Equal(suite.T(), 2, record.FieldMapping["ingredients"])
		assert.Equal(suite.T(), 2, record.FieldMapping["instructions"])
		assert.Equal(suite.T(), true, record.FieldMapping["image_url"])
	})

	suite.Run("UntitledRecipe_ShouldMapTitleFalse", func() {
		// Arrange
		parsed := (&ParsedRecipe{Instructions: []string{"Mix"}}).Normalize()

		// Act
		record := NewImportRecord(uuid.New(), uuid.New(), MethodText, "", "some text", parsed)

		// Assert
		assert.Equal(suite.T(), false, record.FieldMapping["title"])
		assert.Equal(suite.T(), false, record.FieldMapping["image_url"])
		assert.Empty(suite.T(), record.SourceDomain)
	})
}

// TestDomainOf tests analytics domain extraction
func (suite *ImportRecordTestSuite) TestDomainOf() {
	suite.Run("WWWPrefix_ShouldBeStripped", func() {
		assert.Equal(suite.T(), "allrecipes.com", DomainOf("https://www.allrecipes.com/recipe/24074"))
	})

	suite.Run("MixedCaseHost_ShouldBeLowercased", func() {
		assert.Equal(suite.T(), "foodnetwork.com", DomainOf("https://FoodNetwork.com/r/1"))
	})

	suite.Run("EmptyOrUnparsable_ShouldYieldEmpty", func() {
		assert.Empty(suite.T(), DomainOf(""))
		assert.Empty(suite.T(), DomainOf("not a url"))
		assert.Empty(suite.T(), DomainOf("/relative/path"))
	})
}

// TestAnalyticsDay tests aggregate key truncation
func (suite *ImportRecordTestSuite) TestAnalyticsDay() {
	suite.Run("Timestamp_ShouldTruncateToUTCDate", func() {
		// Arrange
		loc := time.FixedZone("UTC+5", 5*3600)
		ts := time.Date(2025, 3, 14, 2, 30, 45, 0, loc)

		// Act
		day := AnalyticsDay(ts)

		// Assert
		assert.Equal(suite.T(), time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), day)
	})

	suite.Run("SameDayInputs_ShouldShareOneKey", func() {
		morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
		evening := time.Date(2025, 6, 1, 22, 59, 0, 0, time.UTC)
		assert.Equal(suite.T(), AnalyticsDay(morning), AnalyticsDay(evening))
	})
}

// TestImportRecordTestSuite runs the test suite
func TestImportRecordTestSuite(t *testing.T) {
	suite.Run(t, new(ImportRecordTestSuite))
}
