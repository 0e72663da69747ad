package handlers

import (
	"net/http"

	"bookit-platform/internal/middleware"
	"bookit-platform/internal/models"
	"bookit-platform/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// BookingHandler handles reservations and a user's booking history
type BookingHandler struct {
	reservations services.ReservationServiceInterface
	bookings     services.BookingQueryServiceInterface
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(reservations services.ReservationServiceInterface, bookings services.BookingQueryServiceInterface) *BookingHandler {
	return &BookingHandler{
		reservations: reservations,
		bookings:     bookings,
	}
}

// reservationBody accepts quantity and price as aliases of numGuests and
// totalPrice. Identity fields sent by the client are ignored.
type reservationBody struct {
	SlotID     string              `json:"slotId" validate:"required"`
	NumGuests  int                 `json:"numGuests" validate:"required"`
	Quantity   int                 `json:"quantity,omitempty" validate:"-"`
	TotalPrice decimal.NullDecimal `json:"totalPrice" validate:"-"`
	Price      decimal.NullDecimal `json:"price,omitempty" validate:"-"`
}

func (b *reservationBody) applyAliases() {
	if b.NumGuests == 0 {
		b.NumGuests = b.Quantity
	}
	if !b.TotalPrice.Valid {
		b.TotalPrice = b.Price
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "You must be logged in to make a booking.")
		return
	}

	var body reservationBody
	if !decodeJSON(w, r, &body) {
		return
	}
	body.applyAliases()
	if !validateBody(w, &body) {
		return
	}
	if !body.TotalPrice.Valid {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing required fields", Details: "totalPrice"})
		return
	}

	booking, err := h.reservations.Reserve(r.Context(), identity, &models.ReservationRequest{
		SlotID:     body.SlotID,
		NumGuests:  body.NumGuests,
		TotalPrice: body.TotalPrice.Decimal,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookings, err := h.bookings.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/{ref}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	booking, err := h.bookings.GetByRef(r.Context(), identity.UserID, chi.URLParam(r, "ref"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
