package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"payment-gateway/internal/models"
	"payment-gateway/internal/repository"
)

// AuthService verifies merchant API credentials. Merchant records are
// read-only on this path, so it is safe to call concurrently.
type AuthService struct {
	merchants repository.MerchantStore
}

func NewAuthService(merchants repository.MerchantStore) *AuthService {
	return &AuthService{merchants: merchants}
}

// Authenticate resolves an api key/secret pair to a merchant.
func (s *AuthService) Authenticate(ctx context.Context, apiKey, apiSecret string) (*models.Merchant, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, models.ErrMissingCredentials()
	}

	merchant, err := s.merchants.GetByAPIKey(ctx, apiKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrInvalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(merchant.APISecret), []byte(apiSecret)) != 1 {
		return nil, models.ErrInvalidCredentials()
	}

	return merchant, nil
}
