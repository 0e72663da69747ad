package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// BookingConfirmed is the only state a booking can be in; there is no cancellation flow
	BookingConfirmed BookingStatus = "confirmed"
)

// Booking is a confirmed reservation of NumGuests seats on one slot
type Booking struct {
	ID         string          `json:"id" db:"id"`
	SlotID     string          `json:"slot_id" db:"slot_id"`
	UserID     string          `json:"user_id" db:"user_id"`
	UserEmail  string          `json:"user_email" db:"user_email"`
	UserName   string          `json:"user_name" db:"user_name"`
	NumGuests  int             `json:"num_guests" db:"num_guests"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	Status     BookingStatus   `json:"status" db:"status"`
	BookingRef string          `json:"booking_ref" db:"booking_ref"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// BookingWithDetails joins a booking to its slot and experience for display.
// Corrupted is set when either join could not be resolved.
type BookingWithDetails struct {
	*Booking
	Slot       *Slot       `json:"availability_slot,omitempty"`
	Experience *Experience `json:"experience,omitempty"`
	Corrupted  bool        `json:"corrupted"`
}

// ReservationRequest is the client-supplied part of a reservation.
// Identity is never part of it.
type ReservationRequest struct {
	SlotID     string          `json:"slotId"`
	NumGuests  int             `json:"numGuests"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Validate validates the reservation request
func (r *ReservationRequest) Validate() error {
	slotID := strings.TrimSpace(r.SlotID)
	if slotID == "" {
		return NewValidationError("slotId", "slot is required")
	}
	if _, err := uuid.Parse(slotID); err != nil {
		return NewValidationError("slotId", "slot id is not valid")
	}
	if r.NumGuests < 1 {
		return NewValidationError("numGuests", "at least one guest is required")
	}
	if r.TotalPrice.IsNegative() {
		return NewValidationError("totalPrice", "total price cannot be negative")
	}
	return validateMoney("totalPrice", r.TotalPrice)
}

// BookingCreateParams is what the repository needs to persist a reservation
type BookingCreateParams struct {
	SlotID     string
	UserID     string
	UserEmail  string
	UserName   string
	NumGuests  int
	TotalPrice decimal.Decimal
}

const (
	bookingRefPrefix   = "BK-"
	bookingRefLength   = 8
	bookingRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var bookingRefRegex = regexp.MustCompile(`^BK-[A-HJ-NP-Z2-9]{8}$`)

// GenerateBookingRef generates a short human-shareable booking reference (e.g. BK-7KQ2M9XA)
func GenerateBookingRef() (string, error) {
	max := big.NewInt(int64(len(bookingRefAlphabet)))

	var sb strings.Builder
	sb.WriteString(bookingRefPrefix)
	for i := 0; i < bookingRefLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		sb.WriteByte(bookingRefAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// IsValidBookingRef reports whether ref has the booking reference format
func IsValidBookingRef(ref string) bool {
	return bookingRefRegex.MatchString(ref)
}

// NormalizeBookingRef upper-cases and trims a user-typed reference
func NormalizeBookingRef(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}
