package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware logs each request with its status, duration, request ID
// and caller. It must be mounted after LoadIdentity to see the caller.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(wrapped, r)

		userID := "anonymous"
		if identity := GetIdentityFromContext(r.Context()); identity != nil {
			userID = identity.UserID
		}
		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf(
			"[%s] %s %s %d %d bytes %v - User: %s - IP: %s",
			chimiddleware.GetReqID(r.Context()),
			r.Method,
			r.URL.Path,
			status,
			wrapped.BytesWritten(),
			time.Since(start),
			userID,
			getClientIP(r),
		)
	})
}

// getClientIP gets the real client IP address, the first X-Forwarded-For hop
// when behind a proxy
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
