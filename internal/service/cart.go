package service

import (
	"context"
	"errors"

	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/repository"
)

// Cart owns per-user cart lines. Every mutation is keyed by user id, so two
// users never see each other's lines.
type Cart struct {
	repo    repository.Cart
	catalog repository.Catalog
}

// NewCart wires the cart service.
func NewCart(repo repository.Cart, catalog repository.Catalog) *Cart {
	return &Cart{repo: repo, catalog: catalog}
}

// Add puts one unit of the product into the user's cart. Repeating the same
// product increments the existing line instead of creating a second one.
func (s *Cart) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.catalog.Product(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return err
	}
	logger.Debug(ctx, "service.cart", "cart.added",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return nil
}

// Items returns the user's cart lines with live product prices.
func (s *Cart) Items(ctx context.Context, userID int64) ([]models.CartItem, error) {
	return s.repo.Items(ctx, userID)
}

// Adjust moves a line quantity by one step. Decrementing a line at quantity
// one removes it. A stale line id maps to ErrNotFound so the caller can tell
// the user the line is gone.
func (s *Cart) Adjust(ctx context.Context, userID, lineID int64, dir models.Direction) error {
	found, err := s.repo.Adjust(ctx, lineID, dir)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	logger.Debug(ctx, "service.cart", "cart.adjusted",
		slog.Int64("user_id", userID),
		slog.Int64("cart_line_id", lineID),
		slog.String("direction", string(dir)),
	)
	return nil
}

// Remove deletes a line outright regardless of quantity.
func (s *Cart) Remove(ctx context.Context, userID, lineID int64) error {
	if err := s.repo.Remove(ctx, lineID); err != nil {
		return err
	}
	logger.Debug(ctx, "service.cart", "cart.removed",
		slog.Int64("user_id", userID),
		slog.Int64("cart_line_id", lineID),
	)
	return nil
}
