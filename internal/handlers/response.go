package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"bookit-platform/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Remaining *int   `json:"remaining,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names in validation errors
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Warning: failed to encode response: %v", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto a status code and a message
// that is safe to show a user
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	var capacityErr *models.CapacityError

	switch {
	case errors.As(err, &capacityErr):
		remaining := capacityErr.Remaining
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:     fmt.Sprintf("Only %d spots available", remaining),
			Remaining: &remaining,
		})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Message, Details: validationErr.Field})
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, models.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "Slot not found")
	case errors.Is(err, models.ErrExperienceNotFound):
		writeError(w, http.StatusNotFound, "Experience not found")
	case errors.Is(err, models.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "Booking not found")
	case errors.Is(err, models.ErrPromoNotFound):
		writeError(w, http.StatusNotFound, "Invalid or expired promo code")
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON decodes an application/json request body into dst. It writes
// the 415 or 400 response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// validateBody runs struct tag validation on a decoded body
func validateBody(w http.ResponseWriter, body interface{}) bool {
	err := validate.Struct(body)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Missing required fields",
		Details: strings.Join(fields, ", "),
	})
	return false
}
