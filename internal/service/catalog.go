// Package service implements the storefront use cases over the repository
// interfaces: catalog browsing and management, cart mutations, and the
// cart-to-order checkout.
package service

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/cache"
	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/repository"
)

// Catalog serves category and product reads plus admin mutations. Reads go
// through the optional redis cache; mutations invalidate it.
type Catalog struct {
	repo   repository.Catalog
	cache  *cache.Catalog
	access *Access
}

// NewCatalog wires the catalog service. The cache may be nil.
func NewCatalog(repo repository.Catalog, cc *cache.Catalog, access *Access) *Catalog {
	return &Catalog{repo: repo, cache: cc, access: access}
}

// Categories returns all categories, cache-first.
func (s *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.cache.Categories(ctx); ok {
		return categories, nil
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.StoreCategories(ctx, categories)
	return categories, nil
}

// ProductsByCategory returns a category's products, cache-first.
func (s *Catalog) ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	if products, ok := s.cache.Products(ctx, categoryID); ok {
		return products, nil
	}
	products, err := s.repo.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.cache.StoreProducts(ctx, categoryID, products)
	return products, nil
}

// Product returns one product card, cache-first.
func (s *Catalog) Product(ctx context.Context, productID int64) (models.Product, error) {
	if product, ok := s.cache.Product(ctx, productID); ok {
		return product, nil
	}
	product, err := s.repo.Product(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	s.cache.StoreProduct(ctx, product)
	return product, nil
}

// AddCategory creates a category on behalf of an administrator. Duplicate
// names are a distinct outcome, not a generic failure.
func (s *Catalog) AddCategory(ctx context.Context, actorID int64, name string) (models.Category, error) {
	if err := s.access.Require(actorID); err != nil {
		return models.Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &DomainError{"EMPTY_NAME", "the category name cannot be empty"}
	}

	category, err := s.repo.AddCategory(ctx, name)
	if errors.Is(err, repository.ErrDuplicate) {
		return models.Category{}, ErrCategoryExists
	}
	if err != nil {
		return models.Category{}, err
	}

	s.cache.InvalidateCategories(ctx)
	logger.Info(ctx, "service.catalog", "category.added",
		slog.Int64("category_id", category.ID),
		slog.Int64("user_id", actorID),
	)
	return category, nil
}

// DeleteCategory removes an empty category; a category with products is
// reported as blocked via ErrCategoryInUse, leaving everything unchanged.
func (s *Catalog) DeleteCategory(ctx context.Context, actorID, categoryID int64) error {
	if err := s.access.Require(actorID); err != nil {
		return err
	}

	blocked, err := s.repo.DeleteCategory(ctx, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if blocked {
		return ErrCategoryInUse
	}

	s.cache.InvalidateCategories(ctx)
	logger.Info(ctx, "service.catalog", "category.deleted",
		slog.Int64("category_id", categoryID),
		slog.Int64("user_id", actorID),
	)
	return nil
}

// AddProduct creates a product from the fields collected by the add-product
// flow. The price has been parsed upstream; it is re-checked here because
// the service is the last gate before the store.
func (s *Catalog) AddProduct(ctx context.Context, actorID int64, draft models.ProductDraft) (models.Product, error) {
	if err := s.access.Require(actorID); err != nil {
		return models.Product{}, err
	}
	if draft.Price.IsNegative() {
		return models.Product{}, ErrInvalidPrice
	}

	product, err := s.repo.AddProduct(ctx, draft)
	if err != nil {
		return models.Product{}, err
	}

	s.cache.InvalidateProducts(ctx, product.CategoryID)
	logger.Info(ctx, "service.catalog", "product.added",
		slog.Int64("product_id", product.ID),
		slog.Int64("category_id", product.CategoryID),
		slog.Int64("user_id", actorID),
	)
	return product, nil
}
