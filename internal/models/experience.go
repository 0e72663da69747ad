package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Experience is a bookable product listing
type Experience struct {
	ID          string          `json:"id" db:"id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Location    string          `json:"location" db:"location"`
	ImageURLs   []string        `json:"image_urls" db:"image_urls"`

	// Populated on the detail read only
	Slots []*Slot `json:"availability_slots,omitempty"`
}

// ExperienceCreateRequest is used by catalog tooling to insert experiences
type ExperienceCreateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	ImageURLs   []string        `json:"image_urls"`
}

// Validate validates the experience creation request
func (r *ExperienceCreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if len(r.Title) > 255 {
		return NewValidationError("title", "title must be less than 255 characters")
	}
	if strings.TrimSpace(r.Location) == "" {
		return NewValidationError("location", "location is required")
	}
	if r.Price.IsNegative() {
		return NewValidationError("price", "price cannot be negative")
	}
	return validateMoney("price", r.Price)
}

var searchSanitizer = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// SanitizeSearchTerm strips everything except letters, digits and whitespace.
// The result is safe to embed in an ILIKE pattern.
func SanitizeSearchTerm(term string) string {
	return strings.TrimSpace(searchSanitizer.ReplaceAllString(term, ""))
}

// MatchesSearch reports whether the experience matches a sanitized search term
// on title, location or description, case-insensitively.
func (e *Experience) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Location), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}
