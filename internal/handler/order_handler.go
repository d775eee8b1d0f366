package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment-gateway/internal/middleware"
	"payment-gateway/internal/models"
	"payment-gateway/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	merchant := middleware.MerchantFrom(c)

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, models.ErrBadRequest("invalid request body"))
		return
	}

	// Minimum-amount policy is enforced here, at the boundary.
	if req.Amount < models.MinOrderAmount {
		writeError(c, h.logger, models.ErrBadRequest(
			fmt.Sprintf("amount must be at least %d", models.MinOrderAmount)))
		return
	}

	order, err := h.orders.Create(c.Request.Context(), merchant.ID, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	merchant := middleware.MerchantFrom(c)

	order, err := h.orders.Get(c.Request.Context(), c.Param("order_id"), merchant.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
