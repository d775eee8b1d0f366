package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"payment-gateway/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, merchant_id, amount, currency, method, status,
			vpa, card_network, card_last4, error_code, error_description,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.MerchantID,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.VPA,
		payment.CardNetwork,
		payment.CardLast4,
		payment.ErrorCode,
		payment.ErrorDescription,
		payment.Version,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `
		SELECT id, order_id, merchant_id, amount, currency, method, status,
			   vpa, card_network, card_last4, error_code, error_description,
			   version, created_at, updated_at
		FROM payments WHERE id = $1
	`
	return r.scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *PaymentRepository) GetByIDAndMerchant(ctx context.Context, id, merchantID string) (*models.Payment, error) {
	query := `
		SELECT id, order_id, merchant_id, amount, currency, method, status,
			   vpa, card_network, card_last4, error_code, error_description,
			   version, created_at, updated_at
		FROM payments WHERE id = $1 AND merchant_id = $2
	`
	return r.scanPayment(r.db.QueryRowContext(ctx, query, id, merchantID))
}

func (r *PaymentRepository) UpdateVersioned(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, error_code = $2, error_description = $3,
			updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`

	res, err := r.db.ExecContext(ctx, query,
		payment.Status,
		payment.ErrorCode,
		payment.ErrorDescription,
		payment.UpdatedAt,
		payment.ID,
		payment.Version,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}

	payment.Version++
	return nil
}

func (r *PaymentRepository) scanPayment(row *sql.Row) (*models.Payment, error) {
	payment := &models.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.MerchantID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&payment.VPA,
		&payment.CardNetwork,
		&payment.CardLast4,
		&payment.ErrorCode,
		&payment.ErrorDescription,
		&payment.Version,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
