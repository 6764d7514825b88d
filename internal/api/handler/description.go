package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlane/prodesc/internal/airtable"
	"github.com/jlane/prodesc/internal/logger"
	"github.com/jlane/prodesc/internal/service"
)

// DescriptionHandler handles the description-save endpoint.
type DescriptionHandler struct {
	descriptionService *service.DescriptionService
}

// NewDescriptionHandler creates a new description handler.
func NewDescriptionHandler(descriptionService *service.DescriptionService) *DescriptionHandler {
	return &DescriptionHandler{
		descriptionService: descriptionService,
	}
}

// Save handles POST /save-description.
func (h *DescriptionHandler) Save(c *gin.Context) {
	var req service.SaveDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields for Airtable record. Please ensure all fields are being sent and are not empty.",
		})
		return
	}

	record, err := h.descriptionService.Save(c.Request.Context(), &req)
	if err != nil {
		h.respondSaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Record created successfully in Airtable!",
		"record":  record,
	})
}

func (h *DescriptionHandler) respondSaveError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	if errors.Is(err, airtable.ErrNotConfigured) {
		logger.CtxError(ctx, "Save request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error: Missing Airtable credentials."})
		return
	}

	// Resolution failures abort the save as a server error regardless of the
	// upstream status that caused them.
	var resolutionErr *service.ResolutionError
	if errors.As(err, &resolutionErr) {
		logger.CtxError(ctx, "Product resolution failed: %v", resolutionErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve linked product record."})
		return
	}

	var apiErr *airtable.APIError
	if errors.As(err, &apiErr) {
		logger.CtxError(ctx, "Airtable API returned %d: %s", apiErr.StatusCode, apiErr.Message)
		c.JSON(apiErr.StatusCode, gin.H{
			"error": fmt.Sprintf("Failed to create record in Airtable. Status: %d. Details: %s",
				apiErr.StatusCode, truncateDetail(apiErr.Message, 200)),
		})
		return
	}

	logger.CtxError(ctx, "Save request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
