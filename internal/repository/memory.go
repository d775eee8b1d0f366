package repository

import (
	"context"
	"sync"

	"payment-gateway/internal/models"
)

// NewMemoryStore returns a Store backed by process-local maps. Used by
// tests and when no DATABASE_URL is configured.
func NewMemoryStore() *Store {
	return &Store{
		Merchants: &memoryMerchants{records: make(map[string]models.Merchant)},
		Orders:    &memoryOrders{records: make(map[string]models.Order)},
		Payments:  &memoryPayments{records: make(map[string]models.Payment)},
	}
}

type memoryMerchants struct {
	mu      sync.RWMutex
	records map[string]models.Merchant
}

func (m *memoryMerchants) Create(_ context.Context, merchant *models.Merchant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[merchant.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range m.records {
		if existing.APIKey == merchant.APIKey || existing.Email == merchant.Email {
			return ErrDuplicate
		}
	}
	m.records[merchant.ID] = *merchant
	return nil
}

func (m *memoryMerchants) GetByID(_ context.Context, id string) (*models.Merchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if merchant, ok := m.records[id]; ok {
		return &merchant, nil
	}
	return nil, ErrNotFound
}

func (m *memoryMerchants) GetByAPIKey(_ context.Context, apiKey string) (*models.Merchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, merchant := range m.records {
		if merchant.APIKey == apiKey {
			found := merchant
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryMerchants) GetByEmail(_ context.Context, email string) (*models.Merchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, merchant := range m.records {
		if merchant.Email == email {
			found := merchant
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

type memoryOrders struct {
	mu      sync.RWMutex
	records map[string]models.Order
}

func (m *memoryOrders) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[order.ID]; ok {
		return ErrDuplicate
	}
	m.records[order.ID] = *order
	return nil
}

func (m *memoryOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if order, ok := m.records[id]; ok {
		return &order, nil
	}
	return nil, ErrNotFound
}

func (m *memoryOrders) GetByIDAndMerchant(_ context.Context, id, merchantID string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.records[id]
	if !ok || order.MerchantID != merchantID {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (m *memoryOrders) UpdateVersioned(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[order.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != order.Version {
		return ErrVersionConflict
	}
	order.Version++
	m.records[order.ID] = *order
	return nil
}

type memoryPayments struct {
	mu      sync.RWMutex
	records map[string]models.Payment
}

func (m *memoryPayments) Create(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[payment.ID]; ok {
		return ErrDuplicate
	}
	m.records[payment.ID] = *payment
	return nil
}

func (m *memoryPayments) GetByID(_ context.Context, id string) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if payment, ok := m.records[id]; ok {
		return &payment, nil
	}
	return nil, ErrNotFound
}

func (m *memoryPayments) GetByIDAndMerchant(_ context.Context, id, merchantID string) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payment, ok := m.records[id]
	if !ok || payment.MerchantID != merchantID {
		return nil, ErrNotFound
	}
	return &payment, nil
}

func (m *memoryPayments) UpdateVersioned(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[payment.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != payment.Version {
		return ErrVersionConflict
	}
	payment.Version++
	m.records[payment.ID] = *payment
	return nil
}
