package middleware

import (
	"crypto/subtle"
	"net/http"

	"bookit-platform/internal/auth"
)

// RequireBearerSecret only lets through requests whose bearer token equals
// secret. An empty secret rejects every request.
func RequireBearerSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r.Header.Get("Authorization"))
			if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
