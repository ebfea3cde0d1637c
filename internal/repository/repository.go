// Package repository defines the narrow persistence interface of the
// storefront and its Postgres implementation.
package repository

import (
	"context"
	"errors"

	"github.com/m3rciful/shopbot/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("repository: duplicate")
	// ErrEmptyCart is returned by CreateOrder when the user's cart holds no
	// lines at transaction time.
	ErrEmptyCart = errors.New("repository: cart is empty")
)

// Catalog provides read and admin-write access to categories and products.
type Catalog interface {
	Categories(ctx context.Context) ([]models.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	Product(ctx context.Context, productID int64) (models.Product, error)
	AddCategory(ctx context.Context, name string) (models.Category, error)
	// DeleteCategory reports blocked=true and does nothing when products
	// still reference the category.
	DeleteCategory(ctx context.Context, categoryID int64) (blocked bool, err error)
	AddProduct(ctx context.Context, draft models.ProductDraft) (models.Product, error)
}

// Cart mutates and reads per-user cart lines.
type Cart interface {
	// Add inserts a line with quantity 1 or increments the existing line for
	// the same (user, product) pair.
	Add(ctx context.Context, userID, productID int64) error
	Items(ctx context.Context, userID int64) ([]models.CartItem, error)
	// Adjust changes a line quantity by one in the given direction; a
	// decrement at quantity 1 deletes the line. found=false reports a stale
	// line id without failing.
	Adjust(ctx context.Context, lineID int64, dir models.Direction) (found bool, err error)
	Remove(ctx context.Context, lineID int64) error
}

// Orders owns finalized orders and the cart-to-order conversion.
type Orders interface {
	// CreateOrder converts the user's cart into an order atomically: it
	// snapshots current product prices into order items, deletes the cart
	// lines, and commits as one unit. Returns ErrEmptyCart when there is
	// nothing to order.
	CreateOrder(ctx context.Context, userID int64, contact models.Contact) (models.Order, error)
	// Orders lists orders newest first, optionally filtered by status.
	Orders(ctx context.Context, status string) ([]models.Order, error)
	OrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}
