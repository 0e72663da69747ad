package handlers

import (
	"log"
	"net/http"

	"bookit-platform/internal/services"
)

// AdminHandler exposes operational triggers. Routes must be mounted behind
// the refresh secret guard.
type AdminHandler struct {
	slots services.SlotServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(slots services.SlotServiceInterface) *AdminHandler {
	return &AdminHandler{slots: slots}
}

// RefreshSlots handles POST /api/admin/refresh-slots
func (h *AdminHandler) RefreshSlots(w http.ResponseWriter, r *http.Request) {
	summary, err := h.slots.Refresh(r.Context())
	if err != nil {
		log.Printf("Error refreshing slots: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to refresh slots")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
