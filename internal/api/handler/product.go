package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlane/prodesc/internal/service"
)

// ProductHandler exposes a read-only view of the products reference table.
type ProductHandler struct {
	resolver *service.ProductResolver
}

// NewProductHandler creates a new product handler.
func NewProductHandler(resolver *service.ProductResolver) *ProductHandler {
	return &ProductHandler{
		resolver: resolver,
	}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.resolver.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list products: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}
