// Package repository provides keyed storage for merchants, orders and
// payments, with Postgres and in-memory implementations.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"payment-gateway/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the given keys.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")

	// ErrVersionConflict is returned by versioned updates when the stored
	// record changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

type MerchantStore interface {
	Create(ctx context.Context, merchant *models.Merchant) error
	GetByID(ctx context.Context, id string) (*models.Merchant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*models.Merchant, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByIDAndMerchant scopes the lookup by owner so one merchant can
	// never read another merchant's order.
	GetByIDAndMerchant(ctx context.Context, id, merchantID string) (*models.Order, error)
	// UpdateVersioned writes the order back only if the stored version
	// still matches order.Version, then bumps it.
	UpdateVersioned(ctx context.Context, order *models.Order) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByIDAndMerchant(ctx context.Context, id, merchantID string) (*models.Payment, error)
	UpdateVersioned(ctx context.Context, payment *models.Payment) error
}

// Store bundles the three collections behind one handle.
type Store struct {
	Merchants MerchantStore
	Orders    OrderStore
	Payments  PaymentStore
}

// NewSQLStore wires the Postgres-backed repositories over one handle.
func NewSQLStore(db *sql.DB) *Store {
	return &Store{
		Merchants: NewMerchantRepository(db),
		Orders:    NewOrderRepository(db),
		Payments:  NewPaymentRepository(db),
	}
}
