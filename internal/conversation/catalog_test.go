package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/models"
)

func TestShowCatalogListsCategories(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()

	r, err := shop.ShowCatalog(ctx)
	require.NoError(t, err)
	require.Empty(t, r.Keyboard)

	_, err = store.AddCategory(ctx, "Mugs")
	require.NoError(t, err)
	_, err = store.AddCategory(ctx, "Pens")
	require.NoError(t, err)

	r, err = shop.ShowCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, r.Keyboard, 2)
	require.Equal(t, ActionCategory, r.Keyboard[0][0].Action)
}

func TestShowCartRendersLinesAndTotal(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()

	r, err := shop.ShowCart(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, r.Text, "empty")

	product := seedCartLine(t, store, 1)
	require.NoError(t, store.Add(ctx, 1, product.ID))

	r, err = shop.ShowCart(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, r.Text, "mug")
	require.Contains(t, r.Text, "Total: $21.00")
	// One control row per line plus the checkout row.
	require.Len(t, r.Keyboard, 2)
	require.Equal(t, ActionOrderCreate, r.Keyboard[1][0].Action)
}

func TestAdjustCartStaleLine(t *testing.T) {
	shop, _, _ := newTestShop()

	r, err := shop.AdjustCart(context.Background(), 1, 404, models.Increment)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alert)
}

func TestShowProductCard(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	product := seedCartLine(t, store, 2)

	r, err := shop.ShowProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Contains(t, r.Text, "mug")
	require.Contains(t, r.Text, "$10.50")
	require.Equal(t, ActionCartAdd, r.Keyboard[0][0].Action)
	require.True(t, r.Edit)
}
