package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlane/prodesc/internal/gemini"
	"github.com/jlane/prodesc/internal/logger"
	"github.com/jlane/prodesc/internal/service"
)

// GenerateHandler handles the text-generation gateway endpoints.
type GenerateHandler struct {
	generationService *service.GenerationService
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(generationService *service.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

// GenerateRequest is the raw-prompt gateway payload.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate handles POST /generate. The provider's JSON response is relayed
// verbatim on success.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required."})
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", result.Raw)
}

// GenerateForProduct handles POST /generate-description: prompt synthesis
// from structured product fields, returning only the extracted text.
func (h *GenerateHandler) GenerateForProduct(c *gin.Context) {
	var req service.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	text, err := h.generationService.GenerateForProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": text})
}

func (h *GenerateHandler) respondGenerationError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	if errors.Is(err, gemini.ErrNotConfigured) {
		logger.CtxError(ctx, "Generation request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error: Missing Gemini API key."})
		return
	}

	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		logger.CtxError(ctx, "Gemini API returned %d: %s", apiErr.StatusCode, apiErr.Message)
		c.JSON(apiErr.StatusCode, gin.H{"error": "Gemini API error: " + truncateDetail(apiErr.Message, 200)})
		return
	}

	logger.CtxError(ctx, "Generation request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// truncateDetail caps upstream error detail relayed to clients.
func truncateDetail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
