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
	"payment-gateway/internal/validation"
)

const paymentIDPrefix = "pay_"

// Submitter accepts a freshly created payment for asynchronous
// settlement. Implemented by Simulator.
type Submitter interface {
	Submit(payment *models.Payment) (<-chan models.PaymentStatus, error)
}

type PaymentService struct {
	payments repository.PaymentStore
	orders   repository.OrderStore
	settler  Submitter
	ids      idgen.Generator
	logger   *zap.Logger
}

func NewPaymentService(payments repository.PaymentStore, orders repository.OrderStore, settler Submitter, ids idgen.Generator, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		settler:  settler,
		ids:      ids,
		logger:   logger,
	}
}

// Create validates the method details, persists the payment in processing
// state and hands it to the settler. It returns without waiting for the
// terminal status.
func (s *PaymentService) Create(ctx context.Context, merchant *models.Merchant, req *models.CreatePaymentRequest) (*models.Payment, error) {
	order, err := s.orders.GetByIDAndMerchant(ctx, req.OrderID, merchant.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrNotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// Amount and currency always come from the order, never the request.
	payment := &models.Payment{
		ID:         s.ids.NewID(paymentIDPrefix),
		OrderID:    order.ID,
		MerchantID: merchant.ID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     models.PaymentStatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch models.PaymentMethod(req.Method) {
	case models.PaymentMethodUPI:
		if req.VPA == "" || !validation.ValidateVPA(req.VPA) {
			return nil, models.ErrInvalidVPA()
		}
		payment.Method = models.PaymentMethodUPI
		payment.VPA = req.VPA

	case models.PaymentMethodCard:
		card := req.Card
		if card == nil {
			return nil, models.ErrBadRequest("card details are required")
		}
		if !validation.ValidateCardNumber(card.Number) {
			return nil, models.ErrInvalidCard()
		}
		if !validation.ValidateCardExpiry(card.ExpiryMonth, card.ExpiryYear) {
			return nil, models.ErrExpiredCard()
		}
		payment.Method = models.PaymentMethodCard
		payment.CardNetwork = validation.DetectCardNetwork(card.Number)
		// Only the network and last four digits are ever stored.
		cleaned := validation.CleanCardNumber(card.Number)
		payment.CardLast4 = cleaned[len(cleaned)-4:]

	default:
		return nil, models.ErrBadRequest("method must be upi or card")
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if _, err := s.settler.Submit(payment); err != nil {
		// The payment stays in processing; a stuck record is visible to
		// the merchant via polling and to operators via logs.
		s.logger.Error("failed to submit payment for settlement",
			zap.String("payment_id", payment.ID), zap.Error(err))
	}

	s.logger.Info("payment created",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", order.ID),
		zap.String("method", string(payment.Method)))

	return payment, nil
}

// Get returns the payment only when it belongs to the merchant.
func (s *PaymentService) Get(ctx context.Context, paymentID, merchantID string) (*models.Payment, error) {
	payment, err := s.payments.GetByIDAndMerchant(ctx, paymentID, merchantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrNotFound("Payment not found")
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}
