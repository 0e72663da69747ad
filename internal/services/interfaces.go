package services

import (
	"context"
	"time"

	"bookit-platform/internal/models"
)

// Repository contracts consumed by the services

// ExperienceRepositoryInterface is the catalog read side
type ExperienceRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Experience, error)
	List(ctx context.Context, term string) ([]*models.Experience, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// SlotRepositoryInterface is the inventory store
type SlotRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	GetByExperience(ctx context.Context, experienceID string) ([]*models.Slot, error)
	RefreshWindow(ctx context.Context, cutoff time.Time, slots []*models.Slot) (deleted, created int, err error)
}

// BookingRepositoryInterface persists reservations. Reserve must check
// capacity, increment spots_booked and insert the booking as one atomic unit.
type BookingRepositoryInterface interface {
	Reserve(ctx context.Context, params *models.BookingCreateParams) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error)
	GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error)
}

// PromoRepositoryInterface looks up promo codes
type PromoRepositoryInterface interface {
	GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error)
}

// ExperienceCache caches experience listings keyed by search term
type ExperienceCache interface {
	GetList(ctx context.Context, term string) ([]*models.Experience, bool, error)
	SetList(ctx context.Context, term string, experiences []*models.Experience) error
}

// Service contracts consumed by the handlers

// SlotServiceInterface maintains the rolling inventory window
type SlotServiceInterface interface {
	Refresh(ctx context.Context) (*models.RefreshSummary, error)
}

// ReservationServiceInterface is the seat reservation entry point
type ReservationServiceInterface interface {
	Reserve(ctx context.Context, identity *models.Identity, req *models.ReservationRequest) (*models.Booking, error)
}

// BookingQueryServiceInterface reads a user's bookings
type BookingQueryServiceInterface interface {
	ListForUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error)
	GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error)
}

// ExperienceServiceInterface is the catalog read path
type ExperienceServiceInterface interface {
	GetExperience(ctx context.Context, id string) (*models.Experience, error)
	ListExperiences(ctx context.Context, search string) ([]*models.Experience, error)
}

// PromoServiceInterface validates promo codes
type PromoServiceInterface interface {
	Validate(ctx context.Context, code string) (*models.PromoCode, error)
}

// PricingServiceInterface prices a checkout
type PricingServiceInterface interface {
	Quote(ctx context.Context, req *QuoteRequest) (*models.Quote, error)
}

// QuoteRequest is the input to a checkout price quote
type QuoteRequest struct {
	SlotID    string `json:"slotId"`
	Quantity  int    `json:"quantity"`
	PromoCode string `json:"promoCode"`
}

// Validate validates the quote request
func (r *QuoteRequest) Validate() error {
	if r.SlotID == "" {
		return models.NewValidationError("slotId", "slot is required")
	}
	if r.Quantity < 1 {
		return models.NewValidationError("quantity", "at least one guest is required")
	}
	return nil
}
