package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookit-platform/internal/models"
)

// PricingService prices a checkout from the slot's experience and an optional promo code
type PricingService struct {
	slots       SlotRepositoryInterface
	experiences ExperienceRepositoryInterface
	promos      PromoServiceInterface
}

// NewPricingService creates a new pricing service
func NewPricingService(slots SlotRepositoryInterface, experiences ExperienceRepositoryInterface, promos PromoServiceInterface) *PricingService {
	return &PricingService{
		slots:       slots,
		experiences: experiences,
		promos:      promos,
	}
}

// Quote calculates subtotal, taxes, discount and total for req
func (s *PricingService) Quote(ctx context.Context, req *QuoteRequest) (*models.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, models.ErrSlotNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	if !slot.CanBook(req.Quantity) {
		return nil, &models.CapacityError{Requested: req.Quantity, Remaining: slot.Available()}
	}

	experience, err := s.experiences.GetByID(ctx, slot.ExperienceID)
	if err != nil {
		if errors.Is(err, models.ErrExperienceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	var promo *models.PromoCode
	if strings.TrimSpace(req.PromoCode) != "" {
		promo, err = s.promos.Validate(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
	}

	return models.CalculateQuote(experience.Price, req.Quantity, promo), nil
}
