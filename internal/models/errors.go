package models

import "net/http"

// Machine-readable error codes surfaced in API error bodies.
const (
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeBadRequest     = "BAD_REQUEST_ERROR"
	CodeNotFound       = "NOT_FOUND_ERROR"
	CodeInvalidVPA     = "INVALID_VPA"
	CodeInvalidCard    = "INVALID_CARD"
	CodeExpiredCard    = "EXPIRED_CARD"
)

// Settlement-side error codes recorded on the payment itself, never
// returned as an HTTP error.
const (
	CodePaymentFailed     = "PAYMENT_FAILED"
	CodeSettlementTimeout = "SETTLEMENT_TIMEOUT"
)

// APIError is a request failure with a stable code and an HTTP status.
// It renders as {"error": {"code": ..., "description": ...}}.
type APIError struct {
	Status      int    `json:"-"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return e.Description
}

func NewAPIError(status int, code, description string) *APIError {
	return &APIError{Status: status, Code: code, Description: description}
}

func ErrMissingCredentials() *APIError {
	return NewAPIError(http.StatusUnauthorized, CodeAuthentication, "Missing API credentials")
}

func ErrInvalidCredentials() *APIError {
	return NewAPIError(http.StatusUnauthorized, CodeAuthentication, "Invalid API credentials")
}

func ErrBadRequest(description string) *APIError {
	return NewAPIError(http.StatusBadRequest, CodeBadRequest, description)
}

func ErrNotFound(description string) *APIError {
	return NewAPIError(http.StatusNotFound, CodeNotFound, description)
}

func ErrInvalidVPA() *APIError {
	return NewAPIError(http.StatusBadRequest, CodeInvalidVPA, "Invalid VPA format")
}

func ErrInvalidCard() *APIError {
	return NewAPIError(http.StatusBadRequest, CodeInvalidCard, "Invalid card number")
}

func ErrExpiredCard() *APIError {
	return NewAPIError(http.StatusBadRequest, CodeExpiredCard, "Card expired")
}
