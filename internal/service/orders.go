package service

import (
	"context"
	"errors"

	"log/slog"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/repository"
)

// Orders owns checkout and the admin order workflow.
type Orders struct {
	repo   repository.Orders
	access *Access
}

// NewOrders wires the orders service.
func NewOrders(repo repository.Orders, access *Access) *Orders {
	return &Orders{repo: repo, access: access}
}

// Checkout converts the user's cart into an order using the contact details
// collected by the checkout flow. Item prices are snapshotted as of this
// moment; the cart is emptied in the same transaction.
func (s *Orders) Checkout(ctx context.Context, userID int64, contact models.Contact) (models.Order, error) {
	order, err := s.repo.CreateOrder(ctx, userID, contact)
	if errors.Is(err, repository.ErrEmptyCart) {
		return models.Order{}, ErrEmptyCart
	}
	if err != nil {
		return models.Order{}, err
	}
	logger.Info(ctx, "service.orders", "order.created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.String("total", order.TotalCost.StringFixed(2)),
	)
	return order, nil
}

// List returns orders for the admin view, newest first. An empty status
// means all orders; anything else must be from the fixed status set.
func (s *Orders) List(ctx context.Context, actorID int64, status string) ([]models.Order, error) {
	if err := s.access.Require(actorID); err != nil {
		return nil, err
	}
	if status != "" && !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.Orders(ctx, status)
}

// Details returns one order with its item snapshots.
func (s *Orders) Details(ctx context.Context, actorID, orderID int64) (models.OrderDetails, error) {
	if err := s.access.Require(actorID); err != nil {
		return models.OrderDetails{}, err
	}
	details, err := s.repo.OrderDetails(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.OrderDetails{}, ErrNotFound
	}
	if err != nil {
		return models.OrderDetails{}, err
	}
	return details, nil
}

// SetStatus moves an order to a new status from the fixed set.
func (s *Orders) SetStatus(ctx context.Context, actorID, orderID int64, status string) error {
	if err := s.access.Require(actorID); err != nil {
		return err
	}
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	logger.Info(ctx, "service.orders", "order.status_changed",
		slog.Int64("order_id", orderID),
		slog.String("order_status", status),
		slog.Int64("user_id", actorID),
	)
	return nil
}
