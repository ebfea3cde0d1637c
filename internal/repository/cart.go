package repository

import (
	"context"
	"fmt"

	"github.com/m3rciful/shopbot/internal/models"
)

// Add inserts a cart line with quantity 1, or increments the quantity of the
// existing line for the same (user, product) pair. The UNIQUE constraint on
// (user_id, product_id) makes the upsert race-free.
func (s *Store) Add(ctx context.Context, userID, productID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart (user_id, product_id, quantity)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart.quantity + 1`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// Items returns the user's cart lines joined with current product data.
func (s *Store) Items(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.SelectContext(ctx, &items,
		`SELECT c.id, c.user_id, c.product_id, c.quantity,
		        p.name  AS product_name,
		        p.price AS product_price
		   FROM cart c
		   JOIN products p ON p.id = c.product_id
		  WHERE c.user_id = $1
		  ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	return items, nil
}

// Adjust changes the line quantity by one. A decrement at quantity 1 deletes
// the line so a zero-quantity row is never persisted. A stale line id is
// reported as found=false, not as an error.
func (s *Store) Adjust(ctx context.Context, lineID int64, dir models.Direction) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin adjust: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var quantity int
	err = tx.GetContext(ctx, &quantity,
		`SELECT quantity FROM cart WHERE id = $1 FOR UPDATE`, lineID)
	if isNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock cart line: %w", err)
	}

	switch {
	case dir == models.Increment:
		_, err = tx.ExecContext(ctx,
			`UPDATE cart SET quantity = quantity + 1 WHERE id = $1`, lineID)
	case quantity > 1:
		_, err = tx.ExecContext(ctx,
			`UPDATE cart SET quantity = quantity - 1 WHERE id = $1`, lineID)
	default:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM cart WHERE id = $1`, lineID)
	}
	if err != nil {
		return false, fmt.Errorf("adjust cart line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit adjust: %w", err)
	}
	return true, nil
}

// Remove unconditionally deletes a cart line.
func (s *Store) Remove(ctx context.Context, lineID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}
