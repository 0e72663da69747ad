package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"bookit-platform/internal/cache"
	"bookit-platform/internal/clock"
	"bookit-platform/internal/config"
	"bookit-platform/internal/database"
	"bookit-platform/internal/models"
	"bookit-platform/internal/repositories"
	"bookit-platform/internal/services"
)

func main() {
	keep := flag.Bool("keep", false, "Keep existing data instead of clearing it first")
	flag.Parse()

	fmt.Println("Seeding started...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx := context.Background()

	db, err := database.NewConnection(ctx, database.ConfigFrom(cfg.Database))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if !*keep {
		if err := clearData(ctx, db.DB); err != nil {
			log.Fatal("Failed to clear existing data:", err)
		}
		fmt.Println("Cleared existing data.")
	}

	experienceRepo := repositories.NewExperienceRepository(db.DB)
	promoRepo := repositories.NewPromoRepository(db.DB)

	for _, req := range sampleExperiences {
		if _, err := experienceRepo.Create(ctx, req); err != nil {
			log.Fatalf("Failed to seed experience %q: %v", req.Title, err)
		}
	}
	fmt.Printf("Seeded %d experiences.\n", len(sampleExperiences))

	for _, promo := range samplePromoCodes {
		if _, err := promoRepo.Create(ctx, promo); err != nil {
			log.Fatalf("Failed to seed promo code %s: %v", promo.CodeText, err)
		}
	}
	fmt.Printf("Seeded %d promo codes.\n", len(samplePromoCodes))

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load slot timezone:", err)
	}

	// Demo inventory starts partly booked
	schedule := models.DefaultSlotSchedule()
	schedule.RandomizeBooked = true

	slotService := services.NewSlotService(experienceRepo, repositories.NewSlotRepository(db.DB), clock.NewSystem(), location, schedule)
	summary, err := slotService.Refresh(ctx)
	if err != nil {
		log.Fatal("Failed to seed slots:", err)
	}
	fmt.Printf("Seeded %d availability slots for %d experiences.\n", summary.SlotsCreated, summary.ExperiencesProcessed)

	invalidateCache(ctx, cfg.Redis)

	fmt.Println("Seeding complete!")
}

func clearData(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE bookings, availability_slots, experiences, promo_codes`)
	return err
}

func invalidateCache(ctx context.Context, cfg config.RedisConfig) {
	if cfg.URL == "" {
		return
	}
	client, err := cache.NewRedisClient(ctx, cache.Options{Addr: cfg.URL, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		log.Printf("Warning: could not reach Redis to clear listing cache: %v", err)
		return
	}
	defer client.Close()

	if err := cache.NewRedisExperienceCache(client, cfg.CacheTTL).Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to clear listing cache: %v", err)
	}
}
