// Package importing provides tests for the import pipeline orchestrator
package importing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/internal/ports/inbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// MockParser is a mock implementation of the parser registry
type MockParser struct {
	mock.Mock
}

func (m *MockParser) Parse(ctx context.Context, method importing.ImportMethod, source string) (*importing.ParsedRecipe, error) {
	args := m.Called(ctx, method, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importing.ParsedRecipe), args.Error(1)
}

// MockRecipeRepository is a mock implementation of the recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) SaveIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []recipe.Ingredient) error {
	args := m.Called(ctx, recipeID, ingredients)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, authorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

// MockImportRepository is a mock implementation of the import repository
type MockImportRepository struct {
	mock.Mock
}

func (m *MockImportRepository) CreateRecord(ctx context.Context, rec *importing.ImportRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockImportRepository) FindRecordByRecipe(ctx context.Context, recipeID uuid.UUID) (*importing.ImportRecord, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importing.ImportRecord), args.Error(1)
}

func (m *MockImportRepository) IncrementDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string, success bool, confidence float64) error {
	args := m.Called(ctx, day, method, domain, success, confidence)
	return args.Error(0)
}

func (m *MockImportRepository) FindDaily(ctx context.Context, day time.Time, method importing.ImportMethod, domain string) (*importing.ImportAnalytics, error) {
	args := m.Called(ctx, day, method, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importing.ImportAnalytics), args.Error(1)
}

// MockTranslationRepository is a mock implementation of the translation repository
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) CreateJob(ctx context.Context, job *translation.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockTranslationRepository) FindJob(ctx context.Context, id uuid.UUID) (*translation.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*translation.Job), args.Error(1)
}

func (m *MockTranslationRepository) ClaimJob(ctx context.Context, id uuid.UUID) (*translation.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*translation.Job), args.Error(1)
}

func (m *MockTranslationRepository) UpdateJob(ctx context.Context, job *translation.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockTranslationRepository) UpsertRecord(ctx context.Context, rec *translation.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockTranslationRepository) FindRecords(ctx context.Context, contentType translation.ContentType, contentID uuid.UUID, targetLanguage string) ([]translation.Record, error) {
	args := m.Called(ctx, contentType, contentID, targetLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]translation.Record), args.Error(1)
}

// MockDispatcher is a mock implementation of the job dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

// ImportServiceTestSuite covers the import orchestration pipeline
type ImportServiceTestSuite struct {
	suite.Suite
	parser       *MockParser
	recipes      *MockRecipeRepository
	imports      *MockImportRepository
	translations *MockTranslationRepository
	dispatcher   *MockDispatcher
	service      inbound.ImportService
}

// SetupTest creates fresh mocks for each test
func (suite *ImportServiceTestSuite) SetupTest() {
	suite.parser = &MockParser{}
	suite.recipes = &MockRecipeRepository{}
	suite.imports = &MockImportRepository{}
	suite.translations = &MockTranslationRepository{}
	suite.dispatcher = &MockDispatcher{}
	suite.service = NewImportService(
		suite.parser,
		suite.recipes,
		suite.imports,
		suite.translations,
		suite.dispatcher,
		zaptest.NewLogger(suite.T()),
	)
}

func (suite *ImportServiceTestSuite) parsedTacos() *importing.ParsedRecipe {
	amount := 2.0
	unit := "cup"
	parsed := &importing.ParsedRecipe{
		Title: "Chicken Tacos",
		Ingredients: []importing.ParsedIngredient{
			{Name: "shredded chicken", Amount: &amount, Unit: &unit},
			{Name: "corn tortillas"},
		},
		Instructions:    []string{"Warm the tortillas", "Fill with chicken"},
		Servings:        3,
		Difficulty:      "easy",
		ConfidenceScore: 0.7,
	}
	return parsed.Normalize()
}

// TestInputValidation tests the fatal pre-parse checks
func (suite *ImportServiceTestSuite) TestInputValidation() {
	suite.Run("UnknownImportType_ShouldFailWithoutSideEffects", func() {
		suite.SetupTest()

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "video",
			SourceData: "something",
			UserID:     uuid.New(),
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeUnsupportedImport))
		suite.parser.AssertNotCalled(suite.T(), "Parse", mock.Anything, mock.Anything, mock.Anything)
		suite.recipes.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})

	suite.Run("EmptySourceData_ShouldFailValidation", func() {
		suite.SetupTest()

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			UserID:     uuid.New(),
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeValidationFailed))
	})

	suite.Run("MissingUser_ShouldFailValidation", func() {
		suite.SetupTest()

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "some recipe text",
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeValidationFailed))
	})
}

// TestSuccessfulImport tests the happy path end to end
func (suite *ImportServiceTestSuite) TestSuccessfulImport() {
	suite.Run("TextImport_ShouldPersistRecipeLineageAndAnalytics", func() {
		suite.SetupTest()

		// Arrange
		userID := uuid.New()
		parsed := suite.parsedTacos()
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw text").Return(parsed, nil)
		suite.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)
		suite.recipes.On("SaveIngredients", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("CreateRecord", mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, importing.MethodText, "", true, 0.7).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "raw text",
			UserID:     userID,
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)

		rec := result.Recipe
		assert.Equal(suite.T(), "Chicken Tacos", rec.Title())
		assert.Equal(suite.T(), userID, rec.AuthorID())
		assert.Equal(suite.T(), recipe.StatusDraft, rec.Status())
		assert.Equal(suite.T(), 3, rec.Servings())
		assert.Equal(suite.T(), recipe.DifficultyEasy, rec.Difficulty())
		require.Len(suite.T(), rec.Ingredients(), 2)
		assert.Equal(suite.T(), 0, rec.Ingredients()[0].OrderIndex)
		assert.Equal(suite.T(), 1, rec.Ingredients()[1].OrderIndex)
		assert.Len(suite.T(), rec.Instructions(), 2)

		assert.Equal(suite.T(), "text", result.ImportInfo.Method)
		assert.Equal(suite.T(), 0.7, result.ImportInfo.Confidence)

		suite.recipes.AssertExpectations(suite.T())
		suite.imports.AssertExpectations(suite.T())
		suite.translations.AssertNotCalled(suite.T(), "CreateJob", mock.Anything, mock.Anything)
	})
}

// TestParseFailures tests the fatal parse path and its analytics
func (suite *ImportServiceTestSuite) TestParseFailures() {
	suite.Run("ParserError_ShouldRecordFailureAnalytics", func() {
		suite.SetupTest()

		// Arrange
		sourceURL := "https://www.example.com/broken"
		suite.parser.On("Parse", mock.Anything, importing.MethodWebpage, sourceURL).
			Return(nil, errors.New("fetch failed"))
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, importing.MethodWebpage, "example.com", false, 0.0).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "webpage",
			SourceData: sourceURL,
			UserID:     uuid.New(),
		})

		// Assert
		assert.Nil(suite.T(), result)
		require.Error(suite.T(), err)
		suite.imports.AssertExpectations(suite.T())
		suite.recipes.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})

	suite.Run("NoInstructions_ShouldRejectWithParseError", func() {
		suite.SetupTest()

		// Arrange
		parsed := (&importing.ParsedRecipe{
			Title:           "Empty Shell",
			ConfidenceScore: 0.6,
		}).Normalize()
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "no steps here").Return(parsed, nil)
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, importing.MethodText, "", false, 0.6).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "no steps here",
			UserID:     uuid.New(),
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeParseFailed))
		suite.imports.AssertExpectations(suite.T())
		suite.recipes.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})

	suite.Run("DegenerateIngredient_ShouldRejectWithParseError", func() {
		suite.SetupTest()

		// Arrange: structured input can carry an ingredient with no
		// name, which normalization leaves in place
		parsed := (&importing.ParsedRecipe{
			Title:           "Mystery Stew",
			Ingredients:     []importing.ParsedIngredient{{Name: ""}},
			Instructions:    []string{"Stir"},
			ConfidenceScore: 0.9,
		}).Normalize()
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "odd json").Return(parsed, nil)
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, importing.MethodText, "", false, 0.9).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "odd json",
			UserID:     uuid.New(),
		})

		// Assert: a source the entity rejects is a parse failure, not
		// a server fault, and it still lands in the failure analytics
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeParseFailed))
		suite.imports.AssertExpectations(suite.T())
		suite.recipes.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})

	suite.Run("RecipeCreateFailure_ShouldAbortImport", func() {
		suite.SetupTest()

		// Arrange
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw").Return(suite.parsedTacos(), nil)
		suite.recipes.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "raw",
			UserID:     uuid.New(),
		})

		// Assert
		assert.Nil(suite.T(), result)
		assert.True(suite.T(), appErrors.Is(err, appErrors.CodeDatabaseError))
		suite.imports.AssertNotCalled(suite.T(), "CreateRecord", mock.Anything, mock.Anything)
	})
}

// TestGracefulDegradation tests the swallowed post-recipe failures
func (suite *ImportServiceTestSuite) TestGracefulDegradation() {
	suite.Run("IngredientSaveFailure_ShouldNotFailImport", func() {
		suite.SetupTest()

		// Arrange
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw").Return(suite.parsedTacos(), nil)
		suite.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)
		suite.recipes.On("SaveIngredients", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("deadlock"))
		suite.imports.On("CreateRecord", mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything, true, mock.Anything).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "raw",
			UserID:     uuid.New(),
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)
		suite.imports.AssertCalled(suite.T(), "CreateRecord", mock.Anything, mock.Anything)
	})

	suite.Run("LineageWriteFailure_ShouldNotFailImport", func() {
		suite.SetupTest()

		// Arrange
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw").Return(suite.parsedTacos(), nil)
		suite.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)
		suite.recipes.On("SaveIngredients", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("CreateRecord", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything, true, mock.Anything).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "raw",
			UserID:     uuid.New(),
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)
	})

	suite.Run("AnalyticsFailure_ShouldNotFailImport", func() {
		suite.SetupTest()

		// Arrange
		suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw").Return(suite.parsedTacos(), nil)
		suite.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)
		suite.recipes.On("SaveIngredients", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("CreateRecord", mock.Anything, mock.Anything).Return(nil)
		suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything, true, mock.Anything).Return(errors.New("table locked"))

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType: "text",
			SourceData: "raw",
			UserID:     uuid.New(),
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)
	})
}

// expectSuccessfulPersistence arranges the happy persistence path so
// the auto-translate cases only differ in their translation gating
func (suite *ImportServiceTestSuite) expectSuccessfulPersistence() {
	suite.parser.On("Parse", mock.Anything, importing.MethodText, "raw").Return(suite.parsedTacos(), nil)
	suite.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.recipes.On("SaveIngredients", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.imports.On("CreateRecord", mock.Anything, mock.Anything).Return(nil)
	suite.imports.On("IncrementDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything, true, mock.Anything).Return(nil)
}

// TestAutoTranslate tests translation enqueueing and its gating
func (suite *ImportServiceTestSuite) TestAutoTranslate() {
	suite.Run("AutoTranslateToSpanish_ShouldEnqueueAndDispatch", func() {
		suite.SetupTest()

		// Arrange
		suite.expectSuccessfulPersistence()
		suite.translations.On("CreateJob", mock.Anything, mock.MatchedBy(func(job *translation.Job) bool {
			return job.ContentType() == translation.ContentRecipe &&
				job.TargetLanguage() == "es" &&
				job.Status() == translation.JobPending
		})).Return(nil)
		suite.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType:     "text",
			SourceData:     "raw",
			UserID:         uuid.New(),
			AutoTranslate:  true,
			TargetLanguage: "es",
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)
		suite.translations.AssertExpectations(suite.T())
		suite.dispatcher.AssertExpectations(suite.T())
	})

	suite.Run("TargetIsSourceLanguage_ShouldSkipTranslation", func() {
		suite.SetupTest()

		// Arrange
		suite.expectSuccessfulPersistence()

		// Act
		_, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType:     "text",
			SourceData:     "raw",
			UserID:         uuid.New(),
			AutoTranslate:  true,
			TargetLanguage: "en",
		})

		// Assert
		require.NoError(suite.T(), err)
		suite.translations.AssertNotCalled(suite.T(), "CreateJob", mock.Anything, mock.Anything)
	})

	suite.Run("NoTargetLanguage_ShouldSkipTranslation", func() {
		suite.SetupTest()

		// Arrange
		suite.expectSuccessfulPersistence()

		// Act
		_, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType:    "text",
			SourceData:    "raw",
			UserID:        uuid.New(),
			AutoTranslate: true,
		})

		// Assert
		require.NoError(suite.T(), err)
		suite.translations.AssertNotCalled(suite.T(), "CreateJob", mock.Anything, mock.Anything)
	})

	suite.Run("DispatchFailure_ShouldNotFailImport", func() {
		suite.SetupTest()

		// Arrange
		suite.expectSuccessfulPersistence()
		suite.translations.On("CreateJob", mock.Anything, mock.Anything).Return(nil)
		suite.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("queue down"))

		// Act
		result, err := suite.service.ImportRecipe(context.Background(), inbound.ImportRecipeCommand{
			ImportType:     "text",
			SourceData:     "raw",
			UserID:         uuid.New(),
			AutoTranslate:  true,
			TargetLanguage: "fr",
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)
	})
}

// TestImportServiceTestSuite runs the test suite
func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
