package repository

import (
	"context"
	"database/sql"

	"payment-gateway/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (
			id, merchant_id, amount, currency, receipt, notes, status,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.MerchantID,
		order.Amount,
		order.Currency,
		order.Receipt,
		order.Notes,
		order.Status,
		order.Version,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, merchant_id, amount, currency, receipt, notes, status,
			   version, created_at, updated_at
		FROM orders WHERE id = $1
	`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *OrderRepository) GetByIDAndMerchant(ctx context.Context, id, merchantID string) (*models.Order, error) {
	query := `
		SELECT id, merchant_id, amount, currency, receipt, notes, status,
			   version, created_at, updated_at
		FROM orders WHERE id = $1 AND merchant_id = $2
	`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, id, merchantID))
}

func (r *OrderRepository) UpdateVersioned(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2, version = version + 1
		WHERE id = $3 AND version = $4
	`

	res, err := r.db.ExecContext(ctx, query,
		order.Status,
		order.UpdatedAt,
		order.ID,
		order.Version,
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

	order.Version++
	return nil
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.MerchantID,
		&order.Amount,
		&order.Currency,
		&order.Receipt,
		&order.Notes,
		&order.Status,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
