package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment-gateway/internal/models"
)

// writeError renders the uniform error body. Unexpected errors are logged
// and masked; internals never leak to the client.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	log.Error("request failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":        "INTERNAL_ERROR",
			"description": "Internal server error",
		},
	})
}
