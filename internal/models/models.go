// Package models defines the storefront entities shared between the
// repository, services, and conversation layers.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products under a unique name.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Product is a single catalog entry. Products are immutable once created.
type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	CategoryID  int64           `db:"category_id"`
}

// ProductDraft carries the fields collected by the add-product flow.
type ProductDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
}

// CartItem is one cart line joined with current product data. The price is
// live: it reflects the product's current price until checkout snapshots it.
type CartItem struct {
	ID           int64           `db:"id"`
	UserID       int64           `db:"user_id"`
	ProductID    int64           `db:"product_id"`
	Quantity     int             `db:"quantity"`
	ProductName  string          `db:"product_name"`
	ProductPrice decimal.Decimal `db:"product_price"`
}

// Subtotal returns the line cost at the current product price.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotal sums line subtotals; computed fresh on every render.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Direction selects how a cart line quantity is adjusted.
type Direction string

const (
	// Increment adds one unit to the line.
	Increment Direction = "incr"
	// Decrement removes one unit; at quantity 1 the line is deleted instead.
	Decrement Direction = "decr"
)

// Order statuses. New orders always start as StatusNew; admins move them
// through the remaining fixed set.
const (
	StatusNew        = "new"
	StatusAccepted   = "accepted"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// AdminStatuses lists the statuses an administrator may assign.
var AdminStatuses = []string{
	StatusAccepted,
	StatusProcessing,
	StatusShipped,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus reports whether s belongs to the fixed status set.
func ValidStatus(s string) bool {
	if s == StatusNew {
		return true
	}
	for _, known := range AdminStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Contact holds the checkout fields collected by the dialogue flow.
type Contact struct {
	Name    string
	Phone   string
	Address string
}

// Order is a finalized purchase. Everything except Status is immutable;
// TotalCost is frozen at creation from snapshot prices.
type Order struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Name      string          `db:"name"`
	Phone     string          `db:"phone"`
	Address   string          `db:"address"`
	TotalCost decimal.Decimal `db:"total_cost"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
}

// OrderItem snapshots one cart line at order-creation time. Price is copied
// from the product and never changes afterwards.
type OrderItem struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	Quantity    int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	ProductName string          `db:"product_name"`
}

// Subtotal returns the item cost at the snapshot price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderDetails is an order together with its item snapshots.
type OrderDetails struct {
	Order
	Items []OrderItem
}
