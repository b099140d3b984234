package apiserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/domain/recipe"
	"github.com/cookingwith/core/internal/domain/translation"
	"github.com/cookingwith/core/internal/infrastructure/monitoring"
	"github.com/cookingwith/core/internal/ports/inbound"
	"github.com/cookingwith/core/internal/ports/outbound"
	appErrors "github.com/cookingwith/core/pkg/errors"
)

// Handlers holds the API handlers and their dependencies
type Handlers struct {
	importService      inbound.ImportService
	translationService inbound.TranslationService
	recipes            outbound.RecipeRepository
	translations       outbound.TranslationRepository
	metrics            *monitoring.MetricsCollector
	logger             *zap.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	importService inbound.ImportService,
	translationService inbound.TranslationService,
	recipes outbound.RecipeRepository,
	translations outbound.TranslationRepository,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		importService:      importService,
		translationService: translationService,
		recipes:            recipes,
		translations:       translations,
		metrics:            metrics,
		logger:             logger.Named("api-handlers"),
	}
}

type importRequest struct {
	ImportType     string `json:"import_type" binding:"required"`
	SourceData     string `json:"source_data" binding:"required"`
	UserID         string `json:"user_id" binding:"required,uuid"`
	AutoTranslate  bool   `json:"auto_translate"`
	TargetLanguage string `json:"target_language"`
}

type recipeResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Ingredients     []ingredientResponse `json:"ingredients"`
	Instructions    []string             `json:"instructions"`
	Tips            string               `json:"tips,omitempty"`
	PrepTimeMinutes int                  `json:"prep_time_minutes"`
	CookTimeMinutes int                  `json:"cook_time_minutes"`
	Servings        int                  `json:"servings"`
	Difficulty      string               `json:"difficulty"`
	ImageURL        string               `json:"image_url,omitempty"`
	SourceURL       string               `json:"source_url,omitempty"`
	CuisineType     string               `json:"cuisine_type,omitempty"`
	MealType        string               `json:"meal_type,omitempty"`
	Tags            []string             `json:"tags"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

type ingredientResponse struct {
	Name       string   `json:"name"`
	Amount     *float64 `json:"amount,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	OrderIndex int      `json:"order_index"`
}

type importResponse struct {
	Recipe     recipeResponse     `json:"recipe"`
	ImportInfo inbound.ImportInfo `json:"import_info"`
}

// ImportRecipe handles POST /api/v1/recipes/import
func (h *Handlers) ImportRecipe(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.NewValidationError(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("user_id must be a valid UUID"))
		return
	}

	start := time.Now()
	result, err := h.importService.ImportRecipe(c.Request.Context(), inbound.ImportRecipeCommand{
		ImportType:     req.ImportType,
		SourceData:     req.SourceData,
		UserID:         userID,
		AutoTranslate:  req.AutoTranslate,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		h.metrics.RecordImport(req.ImportType, false, 0, time.Since(start))
		h.respondError(c, err)
		return
	}

	h.metrics.RecordImport(req.ImportType, true, result.ImportInfo.Confidence, time.Since(start))

	c.JSON(http.StatusCreated, importResponse{
		Recipe:     toRecipeResponse(result.Recipe),
		ImportInfo: result.ImportInfo,
	})
}

// GetRecipe handles GET /api/v1/recipes/:id
func (h *Handlers) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id must be a valid UUID"))
		return
	}

	rec, err := h.recipes.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(rec))
}

type enqueueTranslationRequest struct {
	ContentType    string `json:"content_type" binding:"required"`
	ContentID      string `json:"content_id" binding:"required,uuid"`
	TargetLanguage string `json:"target_language" binding:"required"`
	Priority       string `json:"priority"`
}

type jobResponse struct {
	ID             string     `json:"id"`
	ContentType    string     `json:"content_type"`
	ContentID      string     `json:"content_id"`
	TargetLanguage string     `json:"target_language"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	FieldCount     int        `json:"field_count"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// EnqueueTranslation handles POST /api/v1/translations
func (h *Handlers) EnqueueTranslation(c *gin.Context) {
	var req enqueueTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.NewValidationError(err.Error()))
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("content_id must be a valid UUID"))
		return
	}

	job, err := h.translationService.EnqueueJob(c.Request.Context(), inbound.EnqueueTranslationCommand{
		ContentType:    translation.ContentType(req.ContentType),
		ContentID:      contentID,
		TargetLanguage: req.TargetLanguage,
		Priority:       translation.Priority(req.Priority),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toJobResponse(job))
}

// GetTranslationJob handles GET /api/v1/translations/:id
func (h *Handlers) GetTranslationJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id must be a valid UUID"))
		return
	}

	job, err := h.translations.FindJob(c.Request.Context(), id)
	if err != nil {
		if err == translation.ErrJobNotFound {
			h.respondError(c, appErrors.NewJobNotFoundError(id.String()))
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// ProcessTranslationJob handles POST /api/v1/translations/:id/process.
// It exists for operators to drive a pending job the worker never picked
// up, or one whose dispatch failed; a job that was already claimed or
// has finished answers 409. The normal path is the queue worker.
func (h *Handlers) ProcessTranslationJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id must be a valid UUID"))
		return
	}

	result, err := h.translationService.ProcessJob(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type recordsResponse struct {
	ContentType    string               `json:"content_type"`
	ContentID      string               `json:"content_id"`
	TargetLanguage string               `json:"target_language"`
	Fields         []fieldRecordPayload `json:"fields"`
}

type fieldRecordPayload struct {
	FieldName       string  `json:"field_name"`
	OriginalText    string  `json:"original_text"`
	TranslatedText  string  `json:"translated_text"`
	Provider        string  `json:"provider"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// GetTranslations handles GET /api/v1/translations/:type/:id/:lang,
// returning all translated fields for one content item
func (h *Handlers) GetTranslations(c *gin.Context) {
	contentType := translation.ContentType(c.Param("type"))
	if !contentType.Valid() {
		h.respondError(c, appErrors.NewValidationError("type must be recipe or newsletter"))
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id must be a valid UUID"))
		return
	}

	lang := c.Param("lang")
	records, err := h.translations.FindRecords(c.Request.Context(), contentType, contentID, lang)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fields := make([]fieldRecordPayload, 0, len(records))
	for _, rec := range records {
		fields = append(fields, fieldRecordPayload{
			FieldName:       rec.FieldName,
			OriginalText:    rec.OriginalText,
			TranslatedText:  rec.TranslatedText,
			Provider:        rec.Provider,
			ConfidenceScore: rec.ConfidenceScore,
		})
	}

	c.JSON(http.StatusOK, recordsResponse{
		ContentType:    string(contentType),
		ContentID:      contentID.String(),
		TargetLanguage: lang,
		Fields:         fields,
	})
}

// respondError maps application errors to HTTP responses
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := appErrors.Wrap(err, "request failed")
	requestID := c.GetString("request_id")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.Error(err))
	}

	c.JSON(appErr.StatusCode(), appErrors.ToErrorResponse(appErr, requestID))
}

func toRecipeResponse(rec *recipe.Recipe) recipeResponse {
	ingredients := make([]ingredientResponse, 0, len(rec.Ingredients()))
	for _, ing := range rec.Ingredients() {
		ingredients = append(ingredients, ingredientResponse{
			Name:       ing.Name,
			Amount:     ing.Amount,
			Unit:       ing.Unit,
			Notes:      ing.Notes,
			OrderIndex: ing.OrderIndex,
		})
	}

	return recipeResponse{
		ID:              rec.ID().String(),
		Title:           rec.Title(),
		Description:     rec.Description(),
		Ingredients:     ingredients,
		Instructions:    rec.Instructions(),
		Tips:            rec.Tips(),
		PrepTimeMinutes: rec.PrepTimeMinutes(),
		CookTimeMinutes: rec.CookTimeMinutes(),
		Servings:        rec.Servings(),
		Difficulty:      string(rec.Difficulty()),
		ImageURL:        rec.ImageURL(),
		SourceURL:       rec.SourceURL(),
		CuisineType:     rec.CuisineType(),
		MealType:        rec.MealType(),
		Tags:            rec.Tags(),
		Status:          string(rec.Status()),
		CreatedAt:       rec.CreatedAt(),
	}
}

func toJobResponse(job *translation.Job) jobResponse {
	return jobResponse{
		ID:             job.ID().String(),
		ContentType:    string(job.ContentType()),
		ContentID:      job.ContentID().String(),
		TargetLanguage: job.TargetLanguage(),
		Priority:       string(job.Priority()),
		Status:         string(job.Status()),
		RetryCount:     job.RetryCount(),
		MaxRetries:     job.MaxRetries(),
		ErrorMessage:   job.ErrorMessage(),
		FieldCount:     job.FieldCount(),
		ProcessedAt:    job.ProcessedAt(),
		CreatedAt:      job.CreatedAt(),
	}
}
