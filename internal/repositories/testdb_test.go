package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"bookit-platform/internal/database"
	"bookit-platform/internal/models"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when no test database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Database tests require TEST_DATABASE_URL")
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, database.Config{URL: dsn})
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE bookings, availability_slots, experiences, promo_codes`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db.DB
}

func createTestExperience(t *testing.T, db *sql.DB, title, location, description string) *models.Experience {
	t.Helper()

	exp, err := NewExperienceRepository(db).Create(context.Background(), &models.ExperienceCreateRequest{
		Title:       title,
		Description: description,
		Price:       decimal.NewFromInt(999),
		Location:    location,
		ImageURLs:   []string{"https://images.example.com/" + title + ".jpg"},
	})
	require.NoError(t, err)
	return exp
}

func createTestSlot(t *testing.T, db *sql.DB, experienceID string, start time.Time, total, booked int) *models.Slot {
	t.Helper()

	slot := &models.Slot{}
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO availability_slots (experience_id, start_time, end_time, total_spots, spots_booked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+slotColumns,
		experienceID, start, start.Add(2*time.Hour), total, booked,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.ExperienceID, &slot.StartTime, &slot.EndTime, &slot.TotalSpots, &slot.SpotsBooked)
	require.NoError(t, err)
	return slot
}
