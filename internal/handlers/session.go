package handlers

import (
	"log"
	"net/http"

	"bookit-platform/internal/auth"
	"bookit-platform/internal/middleware"
	"bookit-platform/internal/models"

	"github.com/gorilla/sessions"
)

// SessionHandler exchanges an identity provider token for a cookie session
type SessionHandler struct {
	verifier middleware.TokenVerifier
	store    sessions.Store
}

// NewSessionHandler creates a new session handler. verifier may be nil when
// no identity provider is configured.
func NewSessionHandler(verifier middleware.TokenVerifier, store sessions.Store) *SessionHandler {
	return &SessionHandler{
		verifier: verifier,
		store:    store,
	}
}

// sessionResponse is the signed-in identity plus the token cookie-authenticated
// writes must send back in the X-CSRF-Token header
type sessionResponse struct {
	*models.Identity
	CSRFToken string `json:"csrf_token,omitempty"`
}

// CreateSession handles POST /api/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		writeError(w, http.StatusServiceUnavailable, "Identity provider is not configured")
		return
	}

	token := auth.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Bearer token required")
		return
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid identity token")
		return
	}

	// A stale or tampered cookie yields a fresh session alongside the error
	session, _ := h.store.Get(r, auth.SessionName)
	session.Values[auth.SessionKeyUserID] = identity.UserID
	session.Values[auth.SessionKeyEmail] = identity.Email
	session.Values[auth.SessionKeyName] = identity.Name

	// Rotate the token with every sign-in
	csrfToken, err := auth.NewCSRFToken()
	if err != nil {
		log.Printf("Error generating csrf token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.Values[auth.SessionKeyCSRF] = csrfToken
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set(auth.CSRFHeader, csrfToken)
	writeJSON(w, http.StatusOK, sessionResponse{Identity: identity, CSRFToken: csrfToken})
}

// CurrentSession handles GET /api/session. Cookie sessions get their CSRF
// token back, minting one for sessions that predate it.
func (h *SessionHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp := sessionResponse{Identity: identity}
	if auth.BearerToken(r.Header.Get("Authorization")) == "" {
		csrfToken, err := h.ensureCSRFToken(w, r)
		if err != nil {
			log.Printf("Error issuing csrf token: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		w.Header().Set(auth.CSRFHeader, csrfToken)
		resp.CSRFToken = csrfToken
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) ensureCSRFToken(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := h.store.Get(r, auth.SessionName)
	if err != nil {
		return "", err
	}
	if token, ok := session.Values[auth.SessionKeyCSRF].(string); ok && token != "" {
		return token, nil
	}

	token, err := auth.NewCSRFToken()
	if err != nil {
		return "", err
	}
	session.Values[auth.SessionKeyCSRF] = token
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return token, nil
}

// DeleteSession handles DELETE /api/session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, auth.SessionName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
