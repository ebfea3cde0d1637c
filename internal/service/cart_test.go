package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/models"
)

func seedProduct(t *testing.T, store *memStore, name string, price string) models.Product {
	t.Helper()
	category, err := store.AddCategory(context.Background(), "cat-for-"+name)
	require.NoError(t, err)
	product, err := store.AddProduct(context.Background(), models.ProductDraft{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	return product
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	product := seedProduct(t, store, "mug", "10.50")
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, 1, product.ID))
	require.NoError(t, cart.Add(ctx, 1, product.ID))

	items, err := cart.Items(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Subtotal().Equal(decimal.RequireFromString("21.00")))
}

func TestCartAddUnknownProduct(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)

	err := cart.Add(context.Background(), 1, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAdjustDecrementAtOneRemovesLine(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	product := seedProduct(t, store, "pen", "2.00")
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, 1, product.ID))
	items, err := cart.Items(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, cart.Adjust(ctx, 1, items[0].ID, models.Decrement))

	items, err = cart.Items(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCartAdjustStaleLine(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)

	err := cart.Adjust(context.Background(), 1, 404, models.Increment)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartIsolationBetweenUsers(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	product := seedProduct(t, store, "cup", "3.00")
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, 1, product.ID))
	require.NoError(t, cart.Add(ctx, 2, product.ID))
	require.NoError(t, cart.Add(ctx, 2, product.ID))

	first, err := cart.Items(ctx, 1)
	require.NoError(t, err)
	second, err := cart.Items(ctx, 2)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Equal(t, 1, first[0].Quantity)
	require.Len(t, second, 1)
	require.Equal(t, 2, second[0].Quantity)

	// Mutating one user's line leaves the other untouched.
	require.NoError(t, cart.Remove(ctx, 2, second[0].ID))
	first, err = cart.Items(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
}
