package services

import (
	"context"
	"errors"
	"fmt"

	"bookit-platform/internal/models"
)

// PromoService validates promo codes
type PromoService struct {
	promos PromoRepositoryInterface
}

// NewPromoService creates a new promo service
func NewPromoService(promos PromoRepositoryInterface) *PromoService {
	return &PromoService{promos: promos}
}

// Validate returns the active promo code matching code, ignoring case
func (s *PromoService) Validate(ctx context.Context, code string) (*models.PromoCode, error) {
	code = models.NormalizePromoCode(code)
	if code == "" {
		return nil, models.NewValidationError("code", "Promo code is required")
	}

	promo, err := s.promos.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, models.ErrPromoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to validate promo code: %w", err)
	}
	if !promo.IsActive {
		return nil, models.ErrPromoNotFound
	}

	return promo, nil
}
