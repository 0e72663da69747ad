package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// ErrorHandlingMiddleware turns a handler panic into a JSON 500
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("PANIC [%s] %s %s: %v\n%s",
				chimiddleware.GetReqID(r.Context()), r.Method, r.URL.Path, rec, debug.Stack())
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler answers unknown routes with a JSON 404
func NotFoundHandler() http.Handler {
	return jsonStatus(http.StatusNotFound, "Not found")
}

// MethodNotAllowedHandler answers known routes hit with the wrong method
func MethodNotAllowedHandler() http.Handler {
	return jsonStatus(http.StatusMethodNotAllowed, "Method not allowed")
}

func jsonStatus(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, status, message)
	})
}
