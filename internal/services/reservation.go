package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"bookit-platform/internal/models"
)

// ReservationService turns a verified identity and a reservation request
// into a confirmed booking
type ReservationService struct {
	bookings BookingRepositoryInterface
}

// NewReservationService creates a new reservation service
func NewReservationService(bookings BookingRepositoryInterface) *ReservationService {
	return &ReservationService{bookings: bookings}
}

// Reserve books req.NumGuests seats on req.SlotID for identity. The identity
// must come from the verified session; nothing in req can override it.
func (s *ReservationService) Reserve(ctx context.Context, identity *models.Identity, req *models.ReservationRequest) (*models.Booking, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, models.NewValidationError("", "reservation details are required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := &models.BookingCreateParams{
		SlotID:     strings.TrimSpace(req.SlotID),
		UserID:     identity.UserID,
		UserEmail:  identity.Email,
		UserName:   identity.DisplayName(),
		NumGuests:  req.NumGuests,
		TotalPrice: req.TotalPrice,
	}

	booking, err := s.bookings.Reserve(ctx, params)
	if err != nil {
		var capErr *models.CapacityError
		switch {
		case errors.As(err, &capErr), errors.Is(err, models.ErrSlotNotFound):
			return nil, err
		case errors.Is(err, models.ErrBookingRefConflict):
			log.Printf("Warning: booking reference retries exhausted for slot %s", params.SlotID)
			return nil, err
		default:
			return nil, fmt.Errorf("failed to reserve slot: %w", err)
		}
	}

	log.Printf("Booking %s confirmed: %d guests on slot %s", booking.BookingRef, booking.NumGuests, booking.SlotID)
	return booking, nil
}
