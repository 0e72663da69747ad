package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig allows the booking frontend at origins to call the API
// with its session cookie
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After", "X-CSRF-Token", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

// CORSMiddleware answers preflights and tags responses for allowed origins
func CORSMiddleware(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	exposed := strings.Join(config.ExposedHeaders, ", ")
	origins := config.AllowedOrigins
	if config.AllowCredentials {
		origins = credentialedOrigins(origins)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := r.Header.Get("Origin")
			allowed := origin != "" && isOriginAllowed(origin, origins)

			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				if config.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			if allowed {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if config.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				}
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// credentialedOrigins drops "*" from origins. Combined with credentials it
// would let any site read responses made with the user's session cookie.
func credentialedOrigins(origins []string) []string {
	kept := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			log.Printf("Warning: ignoring CORS origin \"*\" because credentials are allowed")
			continue
		}
		kept = append(kept, origin)
	}
	return kept
}

// isOriginAllowed matches origin exactly, against "*", or against a
// "*.example.com" pattern on the origin's host
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	var host string
	if u, err := url.Parse(origin); err == nil {
		host = u.Hostname()
	}

	for _, allowed := range allowedOrigins {
		switch {
		case allowed == "*", allowed == origin:
			return true
		case strings.HasPrefix(allowed, "*.") && host != "":
			if strings.HasSuffix(host, allowed[1:]) {
				return true
			}
		}
	}
	return false
}

// SecurityHeadersMiddleware sets response headers for a JSON API. Responses
// carry per-user data so nothing is cacheable.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")

		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
