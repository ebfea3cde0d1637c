package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/internal/models"
)

// ShowOrders renders the admin order list, newest first.
func (s *Shop) ShowOrders(ctx context.Context, userID int64, status string) (Render, error) {
	orders, err := s.orders.List(ctx, userID, status)
	if err != nil {
		if r, ok := recoverable(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	if len(orders) == 0 {
		return textRender("No orders yet."), nil
	}

	r := Render{Text: "Orders:"}
	for _, order := range orders {
		label := fmt.Sprintf("#%d · %s · %s · %s",
			order.ID, order.CreatedAt.Format("02.01 15:04"), money(order.TotalCost), order.Status)
		r.Keyboard = append(r.Keyboard, row(
			btn(label, ActionAdminOrder, strconv.FormatInt(order.ID, 10)),
		))
	}
	return r, nil
}

// ShowOrderDetails renders one order with its snapshot items and the status
// controls.
func (s *Shop) ShowOrderDetails(ctx context.Context, userID, orderID int64) (Render, error) {
	details, err := s.orders.Details(ctx, userID, orderID)
	if err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}

	r := Render{Text: orderText(details), Edit: true}
	var statusRow []Button
	for _, status := range models.AdminStatuses {
		if status == details.Status {
			continue
		}
		statusRow = append(statusRow, btn(
			status, ActionOrderStatus,
			fmt.Sprintf("%d|%s", details.ID, status),
		))
		if len(statusRow) == 3 {
			r.Keyboard = append(r.Keyboard, statusRow)
			statusRow = nil
		}
	}
	if len(statusRow) > 0 {
		r.Keyboard = append(r.Keyboard, statusRow)
	}
	r.Keyboard = append(r.Keyboard, row(btn("« Back to orders", ActionToOrders, "")))
	return r, nil
}

// SetOrderStatus applies a status change and re-renders the order card so
// the admin sees the new state immediately.
func (s *Shop) SetOrderStatus(ctx context.Context, userID, orderID int64, status string) (Render, error) {
	if err := s.orders.SetStatus(ctx, userID, orderID, status); err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	return s.ShowOrderDetails(ctx, userID, orderID)
}

func orderText(d models.OrderDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d · %s\n", d.ID, d.Status)
	fmt.Fprintf(&b, "Placed: %s\n\n", d.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "%s, %s\n%s\n\n", d.Name, d.Phone, d.Address)
	for _, item := range d.Items {
		fmt.Fprintf(&b, "%s — %d × %s = %s\n",
			item.ProductName, item.Quantity, money(item.Price), money(item.Subtotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s", money(d.TotalCost))
	return b.String()
}
