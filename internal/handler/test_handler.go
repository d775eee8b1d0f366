package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
	"payment-gateway/internal/service"
)

// TestHandler exposes the seeded test merchant's identity so clients can
// bootstrap without out-of-band credential exchange.
type TestHandler struct {
	merchants repository.MerchantStore
	logger    *zap.Logger
}

func NewTestHandler(merchants repository.MerchantStore, logger *zap.Logger) *TestHandler {
	return &TestHandler{merchants: merchants, logger: logger}
}

// GetTestMerchant handles GET /api/v1/test/merchant
func (h *TestHandler) GetTestMerchant(c *gin.Context) {
	merchant, err := h.merchants.GetByEmail(c.Request.Context(), service.TestMerchantEmail)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(c, h.logger, models.ErrNotFound("Test merchant not found"))
		return
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      merchant.ID,
		"email":   merchant.Email,
		"api_key": merchant.APIKey,
		"seeded":  true,
	})
}
