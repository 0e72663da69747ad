package models

import "strings"

// DefaultDisplayName is used when the identity provider has no full name for a user
const DefaultDisplayName = "BookIt User"

// Identity is a verified caller as asserted by the identity provider
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Validate checks that the identity carries the fields a booking needs
func (i *Identity) Validate() error {
	if i == nil || strings.TrimSpace(i.UserID) == "" {
		return ErrUnauthorized
	}
	if strings.TrimSpace(i.Email) == "" {
		return ErrUnauthorized
	}
	return nil
}

// DisplayName returns the name to record on a booking
func (i *Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return DefaultDisplayName
}
