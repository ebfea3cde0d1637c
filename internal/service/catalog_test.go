package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/models"
)

const adminID = int64(100)

func newCatalogService(store *memStore) *Catalog {
	return NewCatalog(store, nil, NewAccess([]int64{adminID}))
}

func TestAddCategoryDuplicateName(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)
	ctx := context.Background()

	_, err := catalog.AddCategory(ctx, adminID, "Books")
	require.NoError(t, err)

	_, err = catalog.AddCategory(ctx, adminID, "Books")
	require.ErrorIs(t, err, ErrCategoryExists)

	categories, err := catalog.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestAddCategoryRequiresAdmin(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)

	_, err := catalog.AddCategory(context.Background(), 1, "Books")
	require.ErrorIs(t, err, ErrNoAccess)
}

func TestDeleteCategoryWithProductsBlocked(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)
	ctx := context.Background()

	category, err := catalog.AddCategory(ctx, adminID, "Books")
	require.NoError(t, err)
	_, err = catalog.AddProduct(ctx, adminID, models.ProductDraft{
		Name:       "Go in a week",
		Price:      decimal.RequireFromString("25.00"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	err = catalog.DeleteCategory(ctx, adminID, category.ID)
	require.ErrorIs(t, err, ErrCategoryInUse)

	categories, err := catalog.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestDeleteEmptyCategory(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)
	ctx := context.Background()

	category, err := catalog.AddCategory(ctx, adminID, "Empty")
	require.NoError(t, err)
	require.NoError(t, catalog.DeleteCategory(ctx, adminID, category.ID))

	categories, err := catalog.Categories(ctx)
	require.NoError(t, err)
	require.Empty(t, categories)
}

func TestAddProductNegativePrice(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)
	ctx := context.Background()

	category, err := catalog.AddCategory(ctx, adminID, "Books")
	require.NoError(t, err)

	_, err = catalog.AddProduct(ctx, adminID, models.ProductDraft{
		Name:       "refund magnet",
		Price:      decimal.RequireFromString("-1"),
		CategoryID: category.ID,
	})
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestProductNotFound(t *testing.T) {
	store := newMemStore()
	catalog := newCatalogService(store)

	_, err := catalog.Product(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
