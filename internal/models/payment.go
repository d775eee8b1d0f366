package models

import "time"

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// Terminal reports whether a payment status admits no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

type Payment struct {
	ID               string        `json:"id" db:"id"`
	OrderID          string        `json:"order_id" db:"order_id"`
	MerchantID       string        `json:"merchant_id" db:"merchant_id"`
	Amount           int64         `json:"amount" db:"amount"`
	Currency         string        `json:"currency" db:"currency"`
	Method           PaymentMethod `json:"method" db:"method"`
	Status           PaymentStatus `json:"status" db:"status"`
	VPA              string        `json:"vpa,omitempty" db:"vpa"`
	CardNetwork      string        `json:"card_network,omitempty" db:"card_network"`
	CardLast4        string        `json:"card_last4,omitempty" db:"card_last4"`
	ErrorCode        string        `json:"error_code,omitempty" db:"error_code"`
	ErrorDescription string        `json:"error_description,omitempty" db:"error_description"`
	Version          int64         `json:"-" db:"version"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

type CardDetails struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

type CreatePaymentRequest struct {
	OrderID string       `json:"order_id" binding:"required"`
	Method  string       `json:"method" binding:"required"`
	VPA     string       `json:"vpa"`
	Card    *CardDetails `json:"card"`
}
