package handlers

import (
	"net/http"

	"bookit-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// ExperienceHandler serves the public catalog
type ExperienceHandler struct {
	experiences services.ExperienceServiceInterface
}

// NewExperienceHandler creates a new experience handler
func NewExperienceHandler(experiences services.ExperienceServiceInterface) *ExperienceHandler {
	return &ExperienceHandler{experiences: experiences}
}

// ListExperiences handles GET /api/experiences?search= and its q alias
func (h *ExperienceHandler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	if search == "" {
		search = r.URL.Query().Get("q")
	}

	experiences, err := h.experiences.ListExperiences(r.Context(), search)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

// GetExperience handles GET /api/experiences/{id}
func (h *ExperienceHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	experience, err := h.experiences.GetExperience(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experience)
}
