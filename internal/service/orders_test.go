package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/models"
)

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	orders := NewOrders(store, NewAccess([]int64{adminID}))
	ctx := context.Background()

	mug := seedProduct(t, store, "mug", "10.50")
	pen := seedProduct(t, store, "pen", "2.00")
	require.NoError(t, cart.Add(ctx, 1, mug.ID))
	require.NoError(t, cart.Add(ctx, 1, mug.ID))
	require.NoError(t, cart.Add(ctx, 1, pen.ID))

	contact := models.Contact{Name: "Ann", Phone: "+1-555-0100", Address: "221B Baker St"}
	order, err := orders.Checkout(ctx, 1, contact)
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, order.Status)
	require.Equal(t, "Ann", order.Name)
	require.True(t, order.TotalCost.Equal(decimal.RequireFromString("23.00")),
		"total = %s", order.TotalCost)

	items, err := cart.Items(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, items)

	details, err := orders.Details(ctx, adminID, order.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 2)

	byProduct := map[int64]models.OrderItem{}
	for _, item := range details.Items {
		byProduct[item.ProductID] = item
	}
	require.Equal(t, 2, byProduct[mug.ID].Quantity)
	require.True(t, byProduct[mug.ID].Price.Equal(mug.Price))
	require.Equal(t, 1, byProduct[pen.ID].Quantity)
	require.True(t, byProduct[pen.ID].Price.Equal(pen.Price))
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := newMemStore()
	orders := NewOrders(store, NewAccess(nil))

	_, err := orders.Checkout(context.Background(), 1, models.Contact{Name: "Ann"})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderStatusTransitions(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	orders := NewOrders(store, NewAccess([]int64{adminID}))
	ctx := context.Background()

	product := seedProduct(t, store, "mug", "10.50")
	require.NoError(t, cart.Add(ctx, 1, product.ID))
	order, err := orders.Checkout(ctx, 1, models.Contact{Name: "Ann"})
	require.NoError(t, err)

	require.NoError(t, orders.SetStatus(ctx, adminID, order.ID, models.StatusAccepted))
	details, err := orders.Details(ctx, adminID, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, details.Status)

	err = orders.SetStatus(ctx, adminID, order.ID, "misplaced")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	store := newMemStore()
	orders := NewOrders(store, NewAccess([]int64{adminID}))

	err := orders.SetStatus(context.Background(), adminID, 404, models.StatusAccepted)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrdersRequireAdmin(t *testing.T) {
	store := newMemStore()
	orders := NewOrders(store, NewAccess([]int64{adminID}))
	ctx := context.Background()

	_, err := orders.List(ctx, 1, "")
	require.ErrorIs(t, err, ErrNoAccess)
	_, err = orders.Details(ctx, 1, 1)
	require.ErrorIs(t, err, ErrNoAccess)
	err = orders.SetStatus(ctx, 1, 1, models.StatusAccepted)
	require.ErrorIs(t, err, ErrNoAccess)
}

func TestListFiltersByStatus(t *testing.T) {
	store := newMemStore()
	cart := NewCart(store, store)
	orders := NewOrders(store, NewAccess([]int64{adminID}))
	ctx := context.Background()

	product := seedProduct(t, store, "mug", "10.50")
	require.NoError(t, cart.Add(ctx, 1, product.ID))
	first, err := orders.Checkout(ctx, 1, models.Contact{Name: "Ann"})
	require.NoError(t, err)

	require.NoError(t, cart.Add(ctx, 2, product.ID))
	_, err = orders.Checkout(ctx, 2, models.Contact{Name: "Bob"})
	require.NoError(t, err)

	require.NoError(t, orders.SetStatus(ctx, adminID, first.ID, models.StatusShipped))

	shipped, err := orders.List(ctx, adminID, models.StatusShipped)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	require.Equal(t, first.ID, shipped[0].ID)

	all, err := orders.List(ctx, adminID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
