package repository

import (
	"context"
	"database/sql"

	"payment-gateway/internal/models"
)

type MerchantRepository struct {
	db *sql.DB
}

func NewMerchantRepository(db *sql.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

func (r *MerchantRepository) Create(ctx context.Context, merchant *models.Merchant) error {
	query := `
		INSERT INTO merchants (
			id, name, email, api_key, api_secret, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		merchant.ID,
		merchant.Name,
		merchant.Email,
		merchant.APIKey,
		merchant.APISecret,
		merchant.IsActive,
		merchant.CreatedAt,
		merchant.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MerchantRepository) GetByID(ctx context.Context, id string) (*models.Merchant, error) {
	return r.getBy(ctx, "id", id)
}

func (r *MerchantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Merchant, error) {
	return r.getBy(ctx, "api_key", apiKey)
}

func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*models.Merchant, error) {
	return r.getBy(ctx, "email", email)
}

func (r *MerchantRepository) getBy(ctx context.Context, column, value string) (*models.Merchant, error) {
	query := `
		SELECT id, name, email, api_key, api_secret, is_active, created_at, updated_at
		FROM merchants WHERE ` + column + ` = $1
	`

	merchant := &models.Merchant{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&merchant.ID,
		&merchant.Name,
		&merchant.Email,
		&merchant.APIKey,
		&merchant.APISecret,
		&merchant.IsActive,
		&merchant.CreatedAt,
		&merchant.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return merchant, nil
}
