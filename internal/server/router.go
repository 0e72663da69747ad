package server

import (
	"net/http"
	"time"

	"bookit-platform/internal/handlers"
	"bookit-platform/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

// Dependencies are the handlers and guards the router is assembled from
type Dependencies struct {
	Health      *handlers.HealthHandler
	Experiences *handlers.ExperienceHandler
	Bookings    *handlers.BookingHandler
	Promos      *handlers.PromoHandler
	Sessions    *handlers.SessionHandler
	Admin       *handlers.AdminHandler

	Verifier       middleware.TokenVerifier
	SessionStore   sessions.Store
	PromoLimiter   *middleware.RateLimiter
	CORSOrigins    []string
	RefreshSecret  string
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP API
func NewRouter(deps Dependencies) http.Handler {
	identity := middleware.NewIdentityMiddleware(deps.Verifier, deps.SessionStore)
	csrf := middleware.NewCSRFMiddleware(deps.SessionStore)

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(deps.CORSOrigins)))
	r.Use(identity.LoadIdentity)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Timeout(timeout))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", deps.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(csrf.CSRFProtection)

		r.Get("/experiences", deps.Experiences.ListExperiences)
		r.Get("/experiences/{id}", deps.Experiences.GetExperience)
		r.Get("/search", deps.Experiences.ListExperiences)

		r.Group(func(r chi.Router) {
			if deps.PromoLimiter != nil {
				r.Use(middleware.RateLimit(deps.PromoLimiter))
			}
			r.Post("/promo/validate", deps.Promos.ValidatePromo)
		})
		r.Post("/quote", deps.Promos.Quote)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", deps.Sessions.CreateSession)
			r.Get("/", deps.Sessions.CurrentSession)
			r.Delete("/", deps.Sessions.DeleteSession)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.RequireIdentity)
			r.Post("/", deps.Bookings.CreateBooking)
			r.Get("/", deps.Bookings.ListBookings)
			r.Get("/{ref}", deps.Bookings.GetBooking)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireBearerSecret(deps.RefreshSecret))
			r.Post("/refresh-slots", deps.Admin.RefreshSlots)
		})
	})

	return r
}
