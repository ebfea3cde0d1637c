package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/internal/models"
)

// AddToCart puts one unit of a product into the user's cart. Cart mutations
// are rejected while a dialogue flow is running so the flow's free-text
// prompts cannot interleave with cart state.
func (s *Shop) AddToCart(ctx context.Context, userID, productID int64) (Render, error) {
	if s.dialogs.InProgress(userID) {
		return Render{Alert: "Finish or cancel your current dialogue first."}, nil
	}
	if err := s.cart.Add(ctx, userID, productID); err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}

	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return Render{}, err
	}
	r := cartRender(items)
	r.Toast = "Added to cart"
	return r, nil
}

// ShowCart renders the user's cart with per-line quantity controls.
func (s *Shop) ShowCart(ctx context.Context, userID int64) (Render, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return Render{}, err
	}
	return cartRender(items), nil
}

// AdjustCart changes one line's quantity by one step and re-renders the
// cart in place.
func (s *Shop) AdjustCart(ctx context.Context, userID, lineID int64, dir models.Direction) (Render, error) {
	if s.dialogs.InProgress(userID) {
		return Render{Alert: "Finish or cancel your current dialogue first."}, nil
	}
	if err := s.cart.Adjust(ctx, userID, lineID, dir); err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	return s.editCart(ctx, userID)
}

// RemoveCartLine drops a line outright and re-renders the cart in place.
func (s *Shop) RemoveCartLine(ctx context.Context, userID, lineID int64) (Render, error) {
	if s.dialogs.InProgress(userID) {
		return Render{Alert: "Finish or cancel your current dialogue first."}, nil
	}
	if err := s.cart.Remove(ctx, userID, lineID); err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	return s.editCart(ctx, userID)
}

func (s *Shop) editCart(ctx context.Context, userID int64) (Render, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return Render{}, err
	}
	r := cartRender(items)
	r.Edit = true
	return r, nil
}

func cartRender(items []models.CartItem) Render {
	if len(items) == 0 {
		return Render{
			Text:     "Your cart is empty.",
			Keyboard: [][]Button{row(btn("To the catalog", ActionToCatalog, ""))},
		}
	}

	var text strings.Builder
	text.WriteString("Your cart:\n\n")
	r := Render{}
	for _, item := range items {
		fmt.Fprintf(&text, "%s — %d × %s = %s\n",
			item.ProductName, item.Quantity, money(item.ProductPrice), money(item.Subtotal()))
		id := strconv.FormatInt(item.ID, 10)
		r.Keyboard = append(r.Keyboard, row(
			btn("−", ActionCartDecr, id),
			btn(fmt.Sprintf("%s ×%d", item.ProductName, item.Quantity), ActionCartDel, id),
			btn("+", ActionCartIncr, id),
		))
	}
	fmt.Fprintf(&text, "\nTotal: %s", money(models.CartTotal(items)))
	r.Text = text.String()
	r.Keyboard = append(r.Keyboard, row(btn("Checkout ✅", ActionOrderCreate, "")))
	return r
}
