package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m3rciful/shopbot/internal/models"
)

// CreateOrder converts the user's cart into an order as one transaction.
// The cart is re-read inside the transaction with row locks: the lines may
// have changed since the checkout flow started. Prices are snapshotted from
// the products table at this moment, the read lines become order items, and
// the same lines are deleted. Any failure rolls the whole unit back, leaving
// the cart untouched and no order behind.
func (s *Store) CreateOrder(ctx context.Context, userID int64, contact models.Contact) (models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin order: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	type lockedLine struct {
		ID        int64           `db:"id"`
		ProductID int64           `db:"product_id"`
		Quantity  int             `db:"quantity"`
		Price     decimal.Decimal `db:"price"`
	}
	var lines []lockedLine
	err = tx.SelectContext(ctx, &lines,
		`SELECT c.id, c.product_id, c.quantity, p.price
		   FROM cart c
		   JOIN products p ON p.id = c.product_id
		  WHERE c.user_id = $1
		  ORDER BY c.id
		  FOR UPDATE OF c`, userID)
	if err != nil {
		return models.Order{}, fmt.Errorf("lock cart: %w", err)
	}
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	total := decimal.Zero
	lineIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		lineIDs = append(lineIDs, line.ID)
	}

	var order models.Order
	err = tx.GetContext(ctx, &order,
		`INSERT INTO orders (user_id, name, phone, address, total_cost, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, name, phone, address, total_cost, status, created_at`,
		userID, contact.Name, contact.Phone, contact.Address, total, models.StatusNew)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price)
			 VALUES ($1, $2, $3, $4)`,
			order.ID, line.ProductID, line.Quantity, line.Price)
		if err != nil {
			return models.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	// Delete exactly the lines that were read; a line added concurrently
	// after the locked read stays in the cart for the next order.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM cart WHERE id = ANY($1)`, pq.Array(lineIDs))
	if err != nil {
		return models.Order{}, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("commit order: %w", err)
	}
	return order, nil
}

// Orders lists orders newest first, optionally filtered by status.
func (s *Store) Orders(ctx context.Context, status string) ([]models.Order, error) {
	var (
		orders []models.Order
		err    error
	)
	if status != "" {
		err = s.db.SelectContext(ctx, &orders,
			`SELECT id, user_id, name, phone, address, total_cost, status, created_at
			   FROM orders
			  WHERE status = $1
			  ORDER BY created_at DESC`, status)
	} else {
		err = s.db.SelectContext(ctx, &orders,
			`SELECT id, user_id, name, phone, address, total_cost, status, created_at
			   FROM orders
			  ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	return orders, nil
}

// OrderDetails fetches one order with its item snapshots.
func (s *Store) OrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error) {
	var details models.OrderDetails
	err := s.db.GetContext(ctx, &details.Order,
		`SELECT id, user_id, name, phone, address, total_cost, status, created_at
		   FROM orders
		  WHERE id = $1`, orderID)
	if isNoRows(err) {
		return models.OrderDetails{}, ErrNotFound
	}
	if err != nil {
		return models.OrderDetails{}, fmt.Errorf("select order: %w", err)
	}

	err = s.db.SelectContext(ctx, &details.Items,
		`SELECT i.id, i.order_id, i.product_id, i.quantity, i.price,
		        p.name AS product_name
		   FROM order_items i
		   JOIN products p ON p.id = i.product_id
		  WHERE i.order_id = $1
		  ORDER BY i.id`, orderID)
	if err != nil {
		return models.OrderDetails{}, fmt.Errorf("select order items: %w", err)
	}
	return details, nil
}

// UpdateOrderStatus sets a new status on an existing order.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
