package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrExperienceNotFound   = errors.New("experience not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPromoNotFound        = errors.New("invalid or expired promo code")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrBookingRefConflict   = errors.New("could not allocate a unique booking reference")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CapacityError is returned when a slot cannot hold the requested number of guests.
// Remaining is the count observed under the row lock.
type CapacityError struct {
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient spots available (requested: %d, available: %d)", e.Requested, e.Remaining)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
