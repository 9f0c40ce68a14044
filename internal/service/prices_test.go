package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

func TestPriceSeedAndUpdate(t *testing.T) {
	t.Parallel()

	recordStore := store.NewMemoryStore()
	svc := NewPriceService(recordStore)
	ctx := context.Background()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
	require.Equal(t, "VIP", items[0].Name)
	require.Equal(t, models.PriceRanks, items[0].Category)

	updated, err := svc.UpdatePrice(ctx, "price-1", "$6.99")
	require.NoError(t, err)
	require.Equal(t, "$6.99", updated.Price)

	// Everything except the price is untouched.
	require.Equal(t, items[0].Name, updated.Name)
	require.Equal(t, items[0].Category, updated.Category)
	require.Equal(t, items[0].Description, updated.Description)

	// Reseeding does not happen once the collection exists.
	again := NewPriceService(recordStore)
	items, err = again.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
	require.Equal(t, "$6.99", items[0].Price)
}

func TestPriceUpdateErrors(t *testing.T) {
	t.Parallel()

	svc := NewPriceService(store.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.UpdatePrice(ctx, "price-1", "   ")
	require.Error(t, err)

	_, err = svc.UpdatePrice(ctx, "missing", "$1.00")
	require.ErrorIs(t, err, ErrPriceNotFound)
}
