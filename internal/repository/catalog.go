package repository

import (
	"context"
	"fmt"

	"github.com/m3rciful/shopbot/internal/models"
)

// Categories returns all categories ordered by name.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return categories, nil
}

// ProductsByCategory returns all products in a category ordered by name.
func (s *Store) ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, description, price, category_id
		   FROM products
		  WHERE category_id = $1
		  ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("select products by category: %w", err)
	}
	return products, nil
}

// Product fetches a single product by id.
func (s *Store) Product(ctx context.Context, productID int64) (models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		`SELECT id, name, description, price, category_id
		   FROM products
		  WHERE id = $1`, productID)
	if isNoRows(err) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

// AddCategory inserts a category; duplicate names map to ErrDuplicate.
func (s *Store) AddCategory(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)
	if isUniqueViolation(err) {
		return models.Category{}, ErrDuplicate
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes an empty category. It reports blocked=true without
// deleting anything when products still reference the category.
func (s *Store) DeleteCategory(ctx context.Context, categoryID int64) (bool, error) {
	var refs int
	err := s.db.GetContext(ctx, &refs,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return false, fmt.Errorf("count category products: %w", err)
	}
	if refs > 0 {
		return true, nil
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// AddProduct inserts a new product from collected flow fields.
func (s *Store) AddProduct(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		`INSERT INTO products (name, description, price, category_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, description, price, category_id`,
		draft.Name, draft.Description, draft.Price, draft.CategoryID)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}
