package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/models"
)

func seedCartLine(t *testing.T, store *fakeStore, userID int64) models.Product {
	t.Helper()
	ctx := context.Background()
	category, err := store.AddCategory(ctx, "Mugs")
	require.NoError(t, err)
	product, err := store.AddProduct(ctx, models.ProductDraft{
		Name:       "mug",
		Price:      mustPrice("10.50"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, userID, product.ID))
	return product
}

func TestCheckoutFlowPlacesOrder(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	seedCartLine(t, store, 1)

	r, err := shop.StartCheckout(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, r.Text, "name")
	require.True(t, shop.InFlow(1))

	for _, answer := range []string{"Ann", "+1-555-0100"} {
		r, handled, err := shop.Input(ctx, 1, answer)
		require.NoError(t, err)
		require.True(t, handled)
		require.NotEmpty(t, r.Text)
	}

	r, handled, err := shop.Input(ctx, 1, "221B Baker St")
	require.NoError(t, err)
	require.True(t, handled)
	require.Contains(t, r.Text, "Order #")
	require.False(t, shop.InFlow(1))

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	require.Equal(t, "Ann", order.Name)
	require.Equal(t, "+1-555-0100", order.Phone)
	require.Equal(t, "221B Baker St", order.Address)
	require.Equal(t, models.StatusNew, order.Status)
	require.Empty(t, store.lines)
}

func TestStartCheckoutEmptyCart(t *testing.T) {
	shop, _, _ := newTestShop()

	r, err := shop.StartCheckout(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alert)
	require.False(t, shop.InFlow(1))
}

func TestCartMutationRejectedDuringFlow(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	product := seedCartLine(t, store, 1)

	_, err := shop.StartCheckout(ctx, 1)
	require.NoError(t, err)

	r, err := shop.AddToCart(ctx, 1, product.ID)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alert)

	require.Len(t, store.lines, 1)
	require.Equal(t, 1, store.lines[0].quantity)
	require.True(t, shop.InFlow(1))
}

func TestInputWithoutFlowFallsThrough(t *testing.T) {
	shop, _, _ := newTestShop()

	_, handled, err := shop.Input(context.Background(), 1, "hello")
	require.NoError(t, err)
	require.False(t, handled)
}

func TestCancelAbortsFlow(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	seedCartLine(t, store, 1)

	_, err := shop.StartCheckout(ctx, 1)
	require.NoError(t, err)
	require.True(t, shop.InFlow(1))

	r := shop.Cancel(1)
	require.Equal(t, "Cancelled.", r.Text)
	require.False(t, shop.InFlow(1))
	require.Empty(t, store.orders)
}
