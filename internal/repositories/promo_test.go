package repositories

import (
	"context"
	"testing"

	"bookit-platform/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoRepository_GetActiveByCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPromoRepository(db)

	_, err := repo.Create(ctx, &models.PromoCode{CodeText: "save10", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.PromoCode{CodeText: "EXPIRED", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(50), IsActive: false})
	require.NoError(t, err)

	promo, err := repo.GetActiveByCode(ctx, "Save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", promo.CodeText)
	assert.Equal(t, models.DiscountPercentage, promo.DiscountType)

	_, err = repo.GetActiveByCode(ctx, "expired")
	assert.ErrorIs(t, err, models.ErrPromoNotFound)

	_, err = repo.GetActiveByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, models.ErrPromoNotFound)
}

func TestPromoRepository_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPromoRepository(db)

	promo := &models.PromoCode{CodeText: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(100), IsActive: true}
	_, err := repo.Create(ctx, promo)
	require.NoError(t, err)

	promo.CodeText = "flat100"
	_, err = repo.Create(ctx, promo)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
}
