package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"payment-gateway/internal/idgen"
	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
)

const orderIDPrefix = "order_"

type OrderService struct {
	orders repository.OrderStore
	ids    idgen.Generator
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderStore, ids idgen.Generator, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		ids:    ids,
		logger: logger,
	}
}

// Create persists a new order for the merchant. The amount floor is
// enforced at the request boundary before this is called.
func (s *OrderService) Create(ctx context.Context, merchantID string, req *models.CreateOrderRequest) (*models.Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	now := time.Now()
	order := &models.Order{
		ID:         s.ids.NewID(orderIDPrefix),
		MerchantID: merchantID,
		Amount:     req.Amount,
		Currency:   currency,
		Receipt:    req.Receipt,
		Notes:      req.Notes,
		Status:     models.OrderStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("merchant_id", merchantID),
		zap.Int64("amount", order.Amount))

	return order, nil
}

// Get returns the order only when it belongs to the merchant. A miss and
// a foreign order are indistinguishable to the caller.
func (s *OrderService) Get(ctx context.Context, orderID, merchantID string) (*models.Order, error) {
	order, err := s.orders.GetByIDAndMerchant(ctx, orderID, merchantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrNotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
