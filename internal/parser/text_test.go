package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/recipe"
	appErrors "github.com/cookingwith/core/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// TextParserTestSuite covers the free-text and JSON parse paths
type TextParserTestSuite struct {
	suite.Suite
	parser *TextParser
}

// SetupSuite initializes the test suite
func (suite *TextParserTestSuite) SetupSuite() {
	suite.parser = NewTextParser(zap.NewNop())
}

// TestFreeTextParsing tests the heuristic segmenter path
func (suite *TextParserTestSuite) TestFreeTextParsing() {
	suite.Run("StructuredFreeText_ShouldParseWithHeuristicConfidence", func() {
		// Arrange
		text := `Title: Chicken Tacos
Serves: 3

Ingredients:
- 2 cups shredded chicken
- 1/2 cup salsa

Instructions:
1. Warm the tortillas
2. Fill with chicken`

		// Act
		parsed, err := suite.parser.Parse(context.Background(), text)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Chicken Tacos", parsed.Title)
		assert.Equal(suite.T(), 3, parsed.Servings)
		require.Len(suite.T(), parsed.Ingredients, 2)
		assert.Equal(suite.T(), "shredded chicken", parsed.Ingredients[0].Name)
		require.Len(suite.T(), parsed.Instructions, 2)
		assert.Equal(suite.T(), textConfidence, parsed.ConfidenceScore)
	})

	suite.Run("OverlongFirstLine_ShouldYieldEntitySafeTitle", func() {
		// Arrange: pasted text often opens with a run-on description
		// line that the segmenter takes as the title
		text := strings.Repeat("My grandmother's famous stew ", 10) + `
Ingredients:
- 2 cups beef stock

Instructions:
1. Simmer for an hour`

		// Act
		parsed, err := suite.parser.Parse(context.Background(), text)

		// Assert: parse succeeds and the title fits the recipe entity
		require.NoError(suite.T(), err)
		assert.LessOrEqual(suite.T(), len(parsed.Title), importing.MaxTitleLength)
		_, err = recipe.NewRecipe(parsed.Title, uuid.New())
		assert.NoError(suite.T(), err)
	})

	suite.Run("ProseWithoutSections_ShouldStillNormalize", func() {
		// Act
		parsed, err := suite.parser.Parse(context.Background(), "Just a shopping note, not a recipe")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Just a shopping note, not a recipe", parsed.Title)
		assert.NotNil(suite.T(), parsed.Ingredients)
		assert.Empty(suite.T(), parsed.Instructions)
		assert.False(suite.T(), parsed.HasInstructions())
	})

	suite.Run("EmptyInput_ShouldReturnParseError", func() {
		// Act
		parsed, err := suite.parser.Parse(context.Background(), "   \n  ")

		// Assert
		assert.Nil(suite.T(), parsed)
		require.Error(suite.T(), err)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeParseFailed))
	})
}

// TestJSONShortCircuit tests recipe-shaped JSON detection
func (suite *TextParserTestSuite) TestJSONShortCircuit() {
	suite.Run("RecipeShapedJSON_ShouldBypassHeuristics", func() {
		// Arrange
		source := `{
			"title": "Miso Soup",
			"ingredients": ["2 tbsp miso paste", {"name": "tofu", "amount": 200, "unit": "g"}],
			"instructions": ["Simmer the dashi", "Whisk in miso"],
			"servings": 2,
			"confidence_score": 0.97
		}`

		// Act
		parsed, err := suite.parser.Parse(context.Background(), source)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Miso Soup", parsed.Title)
		assert.Equal(suite.T(), 2, parsed.Servings)
		assert.Equal(suite.T(), 0.97, parsed.ConfidenceScore)
		require.Len(suite.T(), parsed.Ingredients, 2)
		assert.Equal(suite.T(), "2 tbsp miso paste", parsed.Ingredients[0].Name)
		assert.Equal(suite.T(), "tofu", parsed.Ingredients[1].Name)
	})

	suite.Run("JSONWithoutConfidence_ShouldGetDefault", func() {
		// Arrange
		source := `{"title":"Salad","ingredients":["lettuce"],"instructions":["Toss"]}`

		// Act
		parsed, err := suite.parser.Parse(context.Background(), source)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), importing.DefaultConfidence, parsed.ConfidenceScore)
	})

	suite.Run("JSONMissingRequiredKeys_ShouldFallBackToHeuristics", func() {
		// Arrange: valid JSON but not recipe-shaped, so the segmenter
		// treats the whole blob as prose
		source := `{"title": "Not a recipe"}`

		// Act
		parsed, err := suite.parser.Parse(context.Background(), source)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), textConfidence, parsed.ConfidenceScore)
	})

	suite.Run("MalformedJSON_ShouldFallBackToHeuristics", func() {
		// Act
		parsed, err := suite.parser.Parse(context.Background(), `{not json at all`)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), textConfidence, parsed.ConfidenceScore)
	})
}

// TestTextParserTestSuite runs the test suite
func TestTextParserTestSuite(t *testing.T) {
	suite.Run(t, new(TextParserTestSuite))
}
