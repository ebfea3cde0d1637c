package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddProductFlowInvalidPriceRepeatsStep(t *testing.T) {
	shop, store, dialogs := newTestShop()
	ctx := context.Background()
	category, err := store.AddCategory(ctx, "Mugs")
	require.NoError(t, err)

	_, err = shop.StartAddProduct(ctx, testAdmin)
	require.NoError(t, err)

	for _, answer := range []string{"mug", "a mug that holds coffee"} {
		_, handled, err := shop.Input(ctx, testAdmin, answer)
		require.NoError(t, err)
		require.True(t, handled)
	}

	r, handled, err := shop.Input(ctx, testAdmin, "free")
	require.NoError(t, err)
	require.True(t, handled)
	require.Contains(t, r.Text, "price")

	// The step did not advance; flow still waits for a valid price.
	_, step := dialogs.Current(testAdmin)
	require.Equal(t, StepProductPrice, step)

	r, handled, err = shop.Input(ctx, testAdmin, "19,90")
	require.NoError(t, err)
	require.True(t, handled)
	require.NotEmpty(t, r.Keyboard)

	r, err = shop.SelectProductCategory(ctx, testAdmin, category.ID)
	require.NoError(t, err)
	require.Contains(t, r.Text, "added")
	require.False(t, shop.InFlow(testAdmin))

	require.Len(t, store.products, 1)
	for _, product := range store.products {
		require.Equal(t, "mug", product.Name)
		require.True(t, product.Price.Equal(mustPrice("19.90")))
		require.Equal(t, category.ID, product.CategoryID)
	}
}

func TestStartAddProductRequiresAdmin(t *testing.T) {
	shop, _, _ := newTestShop()

	r, err := shop.StartAddProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, r.Text, "access")
	require.False(t, shop.InFlow(1))
}

func TestStartAddProductNeedsCategory(t *testing.T) {
	shop, _, _ := newTestShop()

	r, err := shop.StartAddProduct(context.Background(), testAdmin)
	require.NoError(t, err)
	require.Contains(t, r.Text, "category")
	require.False(t, shop.InFlow(testAdmin))
}

func TestSelectCategoryOutsideFlow(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	category, err := store.AddCategory(ctx, "Mugs")
	require.NoError(t, err)

	r, err := shop.SelectProductCategory(ctx, testAdmin, category.ID)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alert)
	require.Empty(t, store.products)
}

func TestAddCategoryFlowDuplicateRepeats(t *testing.T) {
	shop, store, _ := newTestShop()
	ctx := context.Background()
	_, err := store.AddCategory(ctx, "Mugs")
	require.NoError(t, err)

	_, err = shop.StartAddCategory(testAdmin)
	require.NoError(t, err)

	r, handled, err := shop.Input(ctx, testAdmin, "Mugs")
	require.NoError(t, err)
	require.True(t, handled)
	require.Contains(t, r.Text, "already exists")
	require.True(t, shop.InFlow(testAdmin))

	r, handled, err = shop.Input(ctx, testAdmin, "Cups")
	require.NoError(t, err)
	require.True(t, handled)
	require.Contains(t, r.Text, "created")
	require.False(t, shop.InFlow(testAdmin))
	require.Len(t, store.categories, 2)
}
