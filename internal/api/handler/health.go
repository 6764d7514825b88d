package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	service string
	started time.Time
}

// NewHealthHandler creates a health handler reporting under the given
// service name.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{
		service: service,
		started: time.Now(),
	}
}

// Health returns the service name and time since startup.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
