package conversation

import (
	"context"
	"errors"

	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/service"
)

// Shop glues the dialogue together: services for the actual work, the state
// manager for multi-step flows.
type Shop struct {
	catalog *service.Catalog
	cart    *service.Cart
	orders  *service.Orders
	access  *service.Access
	dialogs state.Manager
}

// New wires the dialogue layer.
func New(catalog *service.Catalog, cart *service.Cart, orders *service.Orders, access *service.Access, dialogs state.Manager) *Shop {
	return &Shop{
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		access:  access,
		dialogs: dialogs,
	}
}

// Start greets the user. The main menu itself is a reply keyboard attached
// by the transport.
func (s *Shop) Start(userID int64) Render {
	s.dialogs.Cancel(userID)
	if s.access.Allowed(userID) {
		return textRender("Welcome back. Admin commands are on your keyboard.")
	}
	return textRender("Welcome to the shop! Pick a section on the keyboard below.")
}

// InFlow reports whether the user is in the middle of a dialogue flow.
func (s *Shop) InFlow(userID int64) bool {
	return s.dialogs.InProgress(userID)
}

// Input feeds one free-text message into the user's active flow. handled is
// false when the user has no flow, so the caller can fall through to
// command handling.
func (s *Shop) Input(ctx context.Context, userID int64, text string) (r Render, handled bool, err error) {
	flow, step := s.dialogs.Current(userID)
	if flow == state.FlowNone {
		return Render{}, false, nil
	}

	switch flow {
	case FlowCheckout:
		r, err = s.checkoutInput(ctx, userID, step, text)
	case FlowAddProduct:
		r, err = s.addProductInput(ctx, userID, step, text)
	case FlowAddCategory:
		r, err = s.addCategoryInput(ctx, userID, text)
	default:
		s.dialogs.Cancel(userID)
		return Render{}, false, nil
	}
	return r, true, err
}

// Cancel aborts the active flow, if any.
func (s *Shop) Cancel(userID int64) Render {
	if !s.dialogs.InProgress(userID) {
		return textRender("Nothing to cancel.")
	}
	s.dialogs.Cancel(userID)
	return textRender("Cancelled.")
}

// recoverable converts a domain failure into a user-facing render. Anything
// else is an infrastructure error and propagates to the transport, which
// answers with a generic retry message.
func recoverable(err error) (Render, bool) {
	var derr *service.DomainError
	if errors.As(err, &derr) {
		return textRender(derr.Error()), true
	}
	return Render{}, false
}

// recoverableToast is recoverable for button taps: the message becomes an
// alert on the tapped button instead of a new chat message.
func recoverableToast(err error) (Render, bool) {
	var derr *service.DomainError
	if errors.As(err, &derr) {
		return Render{Alert: derr.Error()}, true
	}
	return Render{}, false
}
