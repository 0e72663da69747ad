package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookit-platform/internal/auth"
	"bookit-platform/internal/cache"
	"bookit-platform/internal/clock"
	"bookit-platform/internal/config"
	"bookit-platform/internal/database"
	"bookit-platform/internal/handlers"
	"bookit-platform/internal/middleware"
	"bookit-platform/internal/models"
	"bookit-platform/internal/repositories"
	"bookit-platform/internal/server"
	"bookit-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := database.NewConnection(ctx, database.ConfigFrom(cfg.Database))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	experienceRepo := repositories.NewExperienceRepository(db.DB)
	slotRepo := repositories.NewSlotRepository(db.DB)
	bookingRepo := repositories.NewBookingRepository(db.DB)
	promoRepo := repositories.NewPromoRepository(db.DB)

	// Listing cache is optional
	var experienceCache services.ExperienceCache
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: Redis unavailable, serving listings without cache: %v", err)
		} else {
			defer client.Close()
			experienceCache = cache.NewRedisExperienceCache(client, cfg.Redis.CacheTTL)
		}
	} else {
		log.Println("Using uncached experience listings (REDIS_URL not configured)")
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load slot timezone:", err)
	}
	schedule := models.DefaultSlotSchedule()
	schedule.RandomizeBooked = cfg.Slots.RandomizeBooked

	// Initialize services
	slotService := services.NewSlotService(experienceRepo, slotRepo, clock.NewSystem(), location, schedule)
	reservationService := services.NewReservationService(bookingRepo)
	bookingService := services.NewBookingQueryService(bookingRepo)
	experienceService := services.NewExperienceService(experienceRepo, slotRepo, experienceCache)
	promoService := services.NewPromoService(promoRepo)
	pricingService := services.NewPricingService(slotRepo, experienceRepo, promoService)

	// Identity provider tokens; the cookie session still works without one
	var verifier middleware.TokenVerifier
	tokenVerifier, err := auth.NewTokenVerifier(auth.VerifierConfig{
		JWKSURL: cfg.Identity.JWKSURL,
		Secret:  cfg.Identity.JWTSecret,
		Issuer:  cfg.Identity.Issuer,
	})
	if err != nil {
		log.Fatal("Failed to initialize token verifier:", err)
	}
	if tokenVerifier != nil {
		defer tokenVerifier.Close()
		verifier = tokenVerifier
	} else {
		log.Println("Warning: no identity provider configured, bearer tokens will be rejected")
	}

	sessionStore := auth.NewSessionStore(cfg.Session.Secret, cfg.Session.MaxAge, cfg.IsProduction())

	promoLimiter := middleware.NewRateLimiter(cfg.RateLimit.PromoAttempts, cfg.RateLimit.PromoWindow)
	defer promoLimiter.Close()

	if cfg.Slots.RefreshSecret == "" {
		log.Println("Warning: REFRESH_SECRET not set, slot refresh endpoint is disabled")
	}

	router := server.NewRouter(server.Dependencies{
		Health:        handlers.NewHealthHandler(db),
		Experiences:   handlers.NewExperienceHandler(experienceService),
		Bookings:      handlers.NewBookingHandler(reservationService, bookingService),
		Promos:        handlers.NewPromoHandler(promoService, pricingService),
		Sessions:      handlers.NewSessionHandler(verifier, sessionStore),
		Admin:         handlers.NewAdminHandler(slotService),
		Verifier:      verifier,
		SessionStore:  sessionStore,
		PromoLimiter:  promoLimiter,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		RefreshSecret: cfg.Slots.RefreshSecret,
	})

	scheduler := services.NewRefreshScheduler(slotService, cfg.Slots.RefreshInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
}
