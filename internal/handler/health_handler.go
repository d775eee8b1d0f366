package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	// ping checks the storage backend; nil means in-process storage.
	ping func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	database := "connected"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			database = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
