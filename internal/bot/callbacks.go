package bot

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/callbacks"
	"github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/conversation"
	"github.com/m3rciful/shopbot/internal/models"
)

func (b *Bot) registerCallbacks(reg *tg.Registry) {
	_ = reg.RegisterCallback(conversation.ActionCategory, b.withID(b.shop.ShowCategory))
	_ = reg.RegisterCallback(conversation.ActionProduct, b.withID(b.shop.ShowProduct))
	_ = reg.RegisterCallback(conversation.ActionToCatalog, b.onBackToCatalog)

	_ = reg.RegisterCallback(conversation.ActionCartAdd, b.withUserID(b.shop.AddToCart))
	_ = reg.RegisterCallback(conversation.ActionCartIncr, b.cartAdjust(models.Increment))
	_ = reg.RegisterCallback(conversation.ActionCartDecr, b.cartAdjust(models.Decrement))
	_ = reg.RegisterCallback(conversation.ActionCartDel, b.withUserID(b.shop.RemoveCartLine))
	_ = reg.RegisterCallback(conversation.ActionOrderCreate, b.onOrderCreate)

	_ = reg.RegisterCallback(conversation.ActionAdminOrder, b.withUserID(b.shop.ShowOrderDetails))
	_ = reg.RegisterCallback(conversation.ActionToOrders, b.onBackToOrders)
	_ = reg.RegisterCallback(conversation.ActionOrderStatus, b.onOrderStatus)

	_ = reg.RegisterCallback(conversation.ActionManageCats, b.onManageCategories)
	_ = reg.RegisterCallback(conversation.ActionCategoryAdd, b.onCategoryAdd)
	_ = reg.RegisterCallback(conversation.ActionCategoryDelMenu, b.onCategoryDelMenu)
	_ = reg.RegisterCallback(conversation.ActionCategoryDel, b.withUserID(b.shop.DeleteCategory))
	_ = reg.RegisterCallback(conversation.ActionProductCategory, b.withUserID(b.shop.SelectProductCategory))
}

// withID adapts a render func keyed by the payload id alone.
func (b *Bot) withID(fn func(ctx context.Context, id int64) (conversation.Render, error)) tele.HandlerFunc {
	return func(c tele.Context) error {
		id, err := callbacks.PayloadInt64(c)
		if err != nil {
			return b.staleButton(c)
		}
		r, err := fn(helpers.BuildContext(c), id)
		if err != nil {
			return b.fail(c, err)
		}
		return b.deliver(c, r)
	}
}

// withUserID adapts a render func keyed by the sender plus the payload id.
func (b *Bot) withUserID(fn func(ctx context.Context, userID, id int64) (conversation.Render, error)) tele.HandlerFunc {
	return func(c tele.Context) error {
		id, err := callbacks.PayloadInt64(c)
		if err != nil {
			return b.staleButton(c)
		}
		r, err := fn(helpers.BuildContext(c), c.Sender().ID, id)
		if err != nil {
			return b.fail(c, err)
		}
		return b.deliver(c, r)
	}
}

func (b *Bot) cartAdjust(dir models.Direction) tele.HandlerFunc {
	return func(c tele.Context) error {
		lineID, err := callbacks.PayloadInt64(c)
		if err != nil {
			return b.staleButton(c)
		}
		r, err := b.shop.AdjustCart(helpers.BuildContext(c), c.Sender().ID, lineID, dir)
		if err != nil {
			return b.fail(c, err)
		}
		return b.deliver(c, r)
	}
}

func (b *Bot) onOrderCreate(c tele.Context) error {
	r, err := b.shop.StartCheckout(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onOrderStatus(c tele.Context) error {
	parts, err := callbacks.PayloadParts(c, "|")
	if err != nil || len(parts) != 2 {
		return b.staleButton(c)
	}
	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return b.staleButton(c)
	}
	r, err := b.shop.SetOrderStatus(helpers.BuildContext(c), c.Sender().ID, orderID, parts[1])
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onBackToCatalog(c tele.Context) error {
	r, err := b.shop.ShowCatalog(helpers.BuildContext(c))
	if err != nil {
		return b.fail(c, err)
	}
	r.Edit = true
	return b.deliver(c, r)
}

func (b *Bot) onBackToOrders(c tele.Context) error {
	r, err := b.shop.ShowOrders(helpers.BuildContext(c), c.Sender().ID, "")
	if err != nil {
		return b.fail(c, err)
	}
	r.Edit = true
	return b.deliver(c, r)
}

func (b *Bot) onManageCategories(c tele.Context) error {
	r, err := b.shop.ManageCategories(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	r.Edit = true
	return b.deliver(c, r)
}

func (b *Bot) onCategoryAdd(c tele.Context) error {
	r, err := b.shop.StartAddCategory(c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onCategoryDelMenu(c tele.Context) error {
	r, err := b.shop.DeleteCategoryMenu(helpers.BuildContext(c), c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) staleButton(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active"})
}
