package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment-gateway/internal/middleware"
	"payment-gateway/internal/models"
	"payment-gateway/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	merchant := middleware.MerchantFrom(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, models.ErrBadRequest("invalid request body"))
		return
	}

	payment, err := h.payments.Create(c.Request.Context(), merchant, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /api/v1/payments/:payment_id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	merchant := middleware.MerchantFrom(c)

	payment, err := h.payments.Get(c.Request.Context(), c.Param("payment_id"), merchant.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
