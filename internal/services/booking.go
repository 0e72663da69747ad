package services

import (
	"context"
	"fmt"
	"strings"

	"bookit-platform/internal/models"
)

// BookingQueryService is the read side for a user's bookings
type BookingQueryService struct {
	bookings BookingRepositoryInterface
}

// NewBookingQueryService creates a new booking query service
func NewBookingQueryService(bookings BookingRepositoryInterface) *BookingQueryService {
	return &BookingQueryService{bookings: bookings}
}

// ListForUser returns userID's bookings newest first. Bookings whose slot or
// experience no longer resolves are returned flagged as corrupted.
func (s *BookingQueryService) ListForUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrUnauthorized
	}

	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	// Repositories may hand back a broader set; the owner filter is enforced here too
	owned := make([]*models.BookingWithDetails, 0, len(bookings))
	for _, b := range bookings {
		if b.Booking != nil && b.UserID == userID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

// GetByRef returns one of userID's bookings by reference
func (s *BookingQueryService) GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrUnauthorized
	}

	ref = models.NormalizeBookingRef(ref)
	if !models.IsValidBookingRef(ref) {
		return nil, models.ErrBookingNotFound
	}

	booking, err := s.bookings.GetByRef(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrBookingNotFound
	}
	return booking, nil
}
