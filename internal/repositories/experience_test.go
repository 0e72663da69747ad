package repositories

import (
	"context"
	"testing"
	"time"

	"bookit-platform/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceRepository_List(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewExperienceRepository(db)

	kayak := createTestExperience(t, db, "Kayaking in the Mangroves", "Udupi, Karnataka", "Curated small-group experience.")
	createTestExperience(t, db, "Coastal Surfing Lessons", "Kovalam, Kerala", "Learn to ride the waves.")

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Coastal Surfing Lessons", all[0].Title, "newest first")

	found, err := repo.List(ctx, "Kayak")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, kayak.ID, found[0].ID)

	byLocation, err := repo.List(ctx, "kerala")
	require.NoError(t, err)
	assert.Len(t, byLocation, 1)

	none, err := repo.List(ctx, "Skydiving")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestExperienceRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewExperienceRepository(db)

	exp := createTestExperience(t, db, "Forest Trek & Waterfall Visit", "Coorg, Karnataka", "Trek")

	got, err := repo.GetByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.Title, got.Title)
	assert.True(t, got.Price.Equal(exp.Price))
	assert.Len(t, got.ImageURLs, 1)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, models.ErrExperienceNotFound)

	_, err = repo.GetByID(ctx, "[id]")
	assert.ErrorIs(t, err, models.ErrExperienceNotFound)
}

func TestExperienceRepository_ListIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := createTestExperience(t, db, "Paragliding in Bir Billing", "Bir", "Fly")
	time.Sleep(time.Millisecond)
	second := createTestExperience(t, db, "Mumbai Street Food Tour", "Mumbai", "Eat")

	ids, err := NewExperienceRepository(db).ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, ids)
}
