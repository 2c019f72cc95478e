package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	app     string
	version string
	now     func() time.Time
}

func NewHealthHandler(app, version string) *HealthHandler {
	return &HealthHandler{app: app, version: version, now: time.Now}
}

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"app":       h.app,
		"version":   h.version,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
