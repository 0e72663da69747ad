package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"bookit-platform/internal/clock"
	"bookit-platform/internal/config"
	"bookit-platform/internal/database"
	"bookit-platform/internal/models"
	"bookit-platform/internal/repositories"
	"bookit-platform/internal/services"
)

// Runs one inventory refresh, for use from cron
func main() {
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

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load slot timezone:", err)
	}
	schedule := models.DefaultSlotSchedule()
	schedule.RandomizeBooked = cfg.Slots.RandomizeBooked

	slotService := services.NewSlotService(
		repositories.NewExperienceRepository(db.DB),
		repositories.NewSlotRepository(db.DB),
		clock.NewSystem(),
		location,
		schedule,
	)

	summary, err := slotService.Refresh(ctx)
	if err != nil {
		log.Fatal("Failed to refresh slots:", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatal("Failed to write summary:", err)
	}
}
