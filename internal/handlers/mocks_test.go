package handlers

import (
	"context"

	"bookit-platform/internal/models"
	"bookit-platform/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockExperienceService for testing
type MockExperienceService struct {
	mock.Mock
}

func (m *MockExperienceService) GetExperience(ctx context.Context, id string) (*models.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockExperienceService) ListExperiences(ctx context.Context, search string) ([]*models.Experience, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Experience), args.Error(1)
}

// MockReservationService for testing
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Reserve(ctx context.Context, identity *models.Identity, req *models.ReservationRequest) (*models.Booking, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

// MockBookingQueryService for testing
type MockBookingQueryService struct {
	mock.Mock
}

func (m *MockBookingQueryService) ListForUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingWithDetails), args.Error(1)
}

func (m *MockBookingQueryService) GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error) {
	args := m.Called(ctx, userID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingWithDetails), args.Error(1)
}

// MockPromoService for testing
type MockPromoService struct {
	mock.Mock
}

func (m *MockPromoService) Validate(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}

// MockPricingService for testing
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, req *services.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

// MockSlotService for testing
type MockSlotService struct {
	mock.Mock
}

func (m *MockSlotService) Refresh(ctx context.Context) (*models.RefreshSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshSummary), args.Error(1)
}

// MockTokenVerifier for testing
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(token string) (*models.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}
