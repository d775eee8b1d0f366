package models

import "time"

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
)

// MinOrderAmount is the smallest accepted order amount in the smallest
// currency unit (paise for INR).
const MinOrderAmount = 100

type Order struct {
	ID         string      `json:"id" db:"id"`
	MerchantID string      `json:"merchant_id" db:"merchant_id"`
	Amount     int64       `json:"amount" db:"amount"`
	Currency   string      `json:"currency" db:"currency"`
	Receipt    string      `json:"receipt,omitempty" db:"receipt"`
	Notes      string      `json:"notes,omitempty" db:"notes"`
	Status     OrderStatus `json:"status" db:"status"`
	Version    int64       `json:"-" db:"version"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

type CreateOrderRequest struct {
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Notes    string `json:"notes"`
}
