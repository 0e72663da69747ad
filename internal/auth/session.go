package auth

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// SessionName is the cookie session that carries a signed-in identity
const SessionName = "session"

// Session value keys
const (
	SessionKeyUserID = "user_id"
	SessionKeyEmail  = "email"
	SessionKeyName   = "name"
	SessionKeyCSRF   = "csrf_token"
)

// CSRFHeader carries the session's CSRF token on cookie-authenticated writes
const CSRFHeader = "X-CSRF-Token"

// NewSessionStore creates the cookie store used for identity sessions
func NewSessionStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// NewCSRFToken returns a random URL-safe token for a session
func NewCSRFToken() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", errors.New("failed to generate csrf token")
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}
