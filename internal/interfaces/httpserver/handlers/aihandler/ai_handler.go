package aihandler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ai-router/internal/config"
	"ai-router/internal/domain/aimodel"
	"ai-router/internal/domain/airouter"
	"ai-router/internal/infrastructure/logger"
	airequests "ai-router/internal/interfaces/httpserver/requests/ai"
	airesponses "ai-router/internal/interfaces/httpserver/responses/ai"
	middleware "ai-router/internal/interfaces/httpserver/middlewares"
	"ai-router/internal/utils/platformerrors"
	"ai-router/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	missingFieldsMessage = "Missing required fields: taskType and content"
	contentExcerptLimit  = 120
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AIHandler exposes the router over HTTP.
type AIHandler struct {
	router   *airouter.Router
	redactor *telemetry.Redactor
}

func NewAIHandler(router *airouter.Router, redactor *telemetry.Redactor) *AIHandler {
	return &AIHandler{router: router, redactor: redactor}
}

// RouteTask godoc
// @Summary Route a task to a model
// @Description Selects the model configured for taskType, falls back once when it is unavailable and returns the normalized result.
// @Tags AI API
// @Accept json
// @Produce json
// @Param request body airequests.RouteTaskRequest true "Task to route"
// @Success 200 {object} airouter.CallResult
// @Failure 400 {object} airesponses.InvalidTaskTypeResponse
// @Failure 405 {object} map[string]string
// @Failure 500 {object} airesponses.ErrorResponse
// @Router /v1/ai/route [post]
func (h *AIHandler) RouteTask(c *gin.Context) {
	var req airequests.RouteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorBody(err))
		return
	}

	category, err := aimodel.ParseTaskCategory(req.TaskType)
	if err != nil {
		c.JSON(http.StatusBadRequest, airesponses.InvalidTaskTypeResponse{
			Error:      "Invalid taskType",
			ValidTypes: aimodel.ValidTaskTypes(),
		})
		return
	}
	c.Set(middleware.TaskTypeKey, string(category))

	ctx := c.Request.Context()
	log := logger.GetLogger()
	log.Debug().
		Str("task_type", string(category)).
		Str("content", h.redactor.Excerpt(req.Content, contentExcerptLimit)).
		Msg("routing task")

	result, err := h.router.RouteTask(ctx, category, req.Content, req.ToOptions())
	if err != nil {
		platformerrors.LogError(log, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "route task failed"))
		c.JSON(http.StatusInternalServerError, airesponses.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// EstimateCost godoc
// @Summary Estimate the cost of a task
// @Description Returns tokens times the cost per token of the model routed for taskType.
// @Tags AI API
// @Produce json
// @Param taskType query string true "Task category"
// @Param tokens query int true "Token count"
// @Success 200 {object} airesponses.CostEstimateResponse
// @Failure 400 {object} map[string]string
// @Router /v1/ai/cost-estimate [get]
func (h *AIHandler) EstimateCost(c *gin.Context) {
	category, err := aimodel.ParseTaskCategory(c.Query("taskType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, airesponses.InvalidTaskTypeResponse{
			Error:      "Invalid taskType",
			ValidTypes: aimodel.ValidTaskTypes(),
		})
		return
	}
	tokens, err := strconv.Atoi(strings.TrimSpace(c.Query("tokens")))
	if err != nil || tokens < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tokens must be a non-negative integer"})
		return
	}

	response := airesponses.CostEstimateResponse{
		TaskType: string(category),
		Tokens:   tokens,
		Cost:     h.router.EstimateCost(category, tokens),
	}
	if model, ok := h.router.Catalog().Route(category); ok {
		response.Model = model.ID
	}
	c.JSON(http.StatusOK, response)
}

// ListModels godoc
// @Summary List registered models
// @Description Lists models in priority order, optionally filtered by capability.
// @Tags AI API
// @Produce json
// @Param capability query string false "Capability tag such as text_generation or image_generation"
// @Success 200 {object} airesponses.ModelListResponse
// @Router /v1/ai/models [get]
func (h *AIHandler) ListModels(c *gin.Context) {
	capability := strings.TrimSpace(c.Query("capability"))
	var models []*aimodel.Model
	if capability == "" {
		models = h.router.Catalog().Models()
	} else {
		models = h.router.ModelsByCapability(aimodel.Capability(capability))
	}
	c.JSON(http.StatusOK, airesponses.NewModelListResponse(capability, models))
}

// ConfigSchema godoc
// @Summary Model configuration schema
// @Description Returns the JSON schema the model document is validated against.
// @Tags AI API
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /v1/ai/config/schema [get]
func (h *AIHandler) ConfigSchema(c *gin.Context) {
	c.JSON(http.StatusOK, config.ModelDocumentSchema())
}

func validationErrorBody(err error) gin.H {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return gin.H{"error": "Invalid request body", "message": err.Error()}
	}
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return gin.H{"error": missingFieldsMessage}
		}
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Namespace()+" failed "+fe.Tag())
	}
	return gin.H{"error": "Invalid options", "message": strings.Join(fields, "; ")}
}
