package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/models"
)

// StartCheckout begins the contact-details flow. An empty cart refuses to
// start one: there would be nothing to order at the end.
func (s *Shop) StartCheckout(ctx context.Context, userID int64) (Render, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return Render{}, err
	}
	if len(items) == 0 {
		return Render{Alert: "Your cart is empty, nothing to order."}, nil
	}

	s.dialogs.Start(userID, FlowCheckout, StepEnterName)
	return textRender("Let's place the order. What is your name?"), nil
}

func (s *Shop) checkoutInput(ctx context.Context, userID int64, step state.Step, text string) (Render, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return textRender("Please answer with a text message."), nil
	}

	switch step {
	case StepEnterName:
		s.dialogs.SetField(userID, fieldName, text)
		s.dialogs.Advance(userID, StepEnterPhone)
		return textRender("Got it. What is your phone number?"), nil

	case StepEnterPhone:
		s.dialogs.SetField(userID, fieldPhone, text)
		s.dialogs.Advance(userID, StepEnterAddress)
		return textRender("And the delivery address?"), nil

	case StepEnterAddress:
		s.dialogs.SetField(userID, fieldAddress, text)
		return s.finishCheckout(ctx, userID)

	default:
		s.dialogs.Cancel(userID)
		return textRender("Something went off track, the order was not placed. Start over from the cart."), nil
	}
}

func (s *Shop) finishCheckout(ctx context.Context, userID int64) (Render, error) {
	fields := s.dialogs.Complete(userID)
	contact := models.Contact{
		Name:    fieldString(fields, fieldName),
		Phone:   fieldString(fields, fieldPhone),
		Address: fieldString(fields, fieldAddress),
	}

	order, err := s.orders.Checkout(ctx, userID, contact)
	if err != nil {
		if r, ok := recoverable(err); ok {
			return r, nil
		}
		return Render{}, err
	}

	return textRender(fmt.Sprintf(
		"Order #%d placed, total %s. We will contact you at %s.",
		order.ID, money(order.TotalCost), contact.Phone,
	)), nil
}

func fieldString(fields map[string]interface{}, key string) string {
	v, _ := fields[key].(string)
	return v
}
