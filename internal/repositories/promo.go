package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookit-platform/internal/models"
)

// PromoRepository handles promo code data operations
type PromoRepository struct {
	db *sql.DB
}

// NewPromoRepository creates a new promo code repository
func NewPromoRepository(db *sql.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

const promoColumns = `id, code_text, discount_type, discount_value, is_active, created_at`

// Create inserts a promo code, storing the code upper-cased
func (r *PromoRepository) Create(ctx context.Context, promo *models.PromoCode) (*models.PromoCode, error) {
	if err := promo.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO promo_codes (code_text, discount_type, discount_value, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + promoColumns

	created, err := scanPromo(r.db.QueryRowContext(ctx, query,
		models.NormalizePromoCode(promo.CodeText),
		promo.DiscountType,
		promo.DiscountValue,
		promo.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("promo code %s: %w", promo.CodeText, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	return created, nil
}

// GetActiveByCode looks up an active promo code, ignoring case
func (r *PromoRepository) GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE UPPER(code_text) = $1 AND is_active = TRUE`

	promo, err := scanPromo(r.db.QueryRowContext(ctx, query, models.NormalizePromoCode(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return promo, nil
}

func scanPromo(row rowScanner) (*models.PromoCode, error) {
	promo := &models.PromoCode{}
	err := row.Scan(
		&promo.ID,
		&promo.CodeText,
		&promo.DiscountType,
		&promo.DiscountValue,
		&promo.IsActive,
		&promo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return promo, nil
}
