package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
)

// Well-known test merchant provisioned at startup.
const (
	TestMerchantID     = "550e8400-e29b-41d4-a716-446655440000"
	TestMerchantEmail  = "test@example.com"
	TestMerchantKey    = "key_test_abc123"
	TestMerchantSecret = "secret_test_xyz789"
)

// SeedTestMerchant provisions the test merchant if it is not present.
func SeedTestMerchant(ctx context.Context, merchants repository.MerchantStore, logger *zap.Logger) error {
	_, err := merchants.GetByEmail(ctx, TestMerchantEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	now := time.Now()
	merchant := &models.Merchant{
		ID:        TestMerchantID,
		Name:      "Test Merchant",
		Email:     TestMerchantEmail,
		APIKey:    TestMerchantKey,
		APISecret: TestMerchantSecret,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := merchants.Create(ctx, merchant); err != nil {
		// A concurrent replica may have seeded it first.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}

	logger.Info("test merchant seeded", zap.String("merchant_id", merchant.ID))
	return nil
}
