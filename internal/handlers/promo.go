package handlers

import (
	"net/http"

	"bookit-platform/internal/services"
)

// PromoHandler handles promo code checks and checkout quotes
type PromoHandler struct {
	promos  services.PromoServiceInterface
	pricing services.PricingServiceInterface
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(promos services.PromoServiceInterface, pricing services.PricingServiceInterface) *PromoHandler {
	return &PromoHandler{
		promos:  promos,
		pricing: pricing,
	}
}

type promoBody struct {
	Code string `json:"code"`
}

// ValidatePromo handles POST /api/promo/validate
func (h *PromoHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	var body promoBody
	if !decodeJSON(w, r, &body) {
		return
	}

	promo, err := h.promos.Validate(r.Context(), body.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

type quoteBody struct {
	SlotID    string `json:"slotId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
	PromoCode string `json:"promoCode"`
}

// Quote handles POST /api/quote
func (h *PromoHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var body quoteBody
	if !decodeJSON(w, r, &body) || !validateBody(w, &body) {
		return
	}

	quote, err := h.pricing.Quote(r.Context(), &services.QuoteRequest{
		SlotID:    body.SlotID,
		Quantity:  body.Quantity,
		PromoCode: body.PromoCode,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
