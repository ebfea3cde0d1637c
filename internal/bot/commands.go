package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/commands"
	"github.com/m3rciful/shopbot/core/telegram/helpers"
)

func (b *Bot) registerCommands(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.onStart,
		Description: "Open the shop",
	})
	reg.RegisterCommand("/catalog", commands.Command{
		Handler:     b.onCatalog,
		Description: "Browse the catalog",
		Aliases:     []string{labelCatalog},
	})
	reg.RegisterCommand("/cart", commands.Command{
		Handler:     b.onCart,
		Description: "Show your cart",
		Aliases:     []string{labelCart},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     b.onCancel,
		Description: "Cancel the current dialogue",
		Hidden:      true,
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     b.onAdmin,
		Description: "Open the admin menu",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.RegisterCommand("/orders", commands.Command{
		Handler:     b.onOrders,
		Description: "Manage orders",
		AdminOnly:   true,
		Aliases:     []string{labelOrders},
	})
	reg.RegisterCommand("/addproduct", commands.Command{
		Handler:     b.onAddProduct,
		Description: "Add a product",
		AdminOnly:   true,
		Aliases:     []string{labelAddProduct},
	})
	reg.RegisterCommand("/categories", commands.Command{
		Handler:     b.onCategories,
		Description: "Manage categories",
		AdminOnly:   true,
		Aliases:     []string{labelCategories},
	})
}

func (b *Bot) onStart(c tele.Context) error {
	userID := c.Sender().ID
	r := b.shop.Start(userID)
	return helpers.SendText(c, r.Text, &tele.SendOptions{ReplyMarkup: b.menuFor(userID)})
}

func (b *Bot) onAdmin(c tele.Context) error {
	return helpers.SendText(c, "Admin menu:", &tele.SendOptions{ReplyMarkup: b.menuFor(c.Sender().ID)})
}

func (b *Bot) onCatalog(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, err := b.shop.ShowCatalog(ctx)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onCart(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, err := b.shop.ShowCart(ctx, c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onCancel(c tele.Context) error {
	return b.deliver(c, b.shop.Cancel(c.Sender().ID))
}

func (b *Bot) onOrders(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, err := b.shop.ShowOrders(ctx, c.Sender().ID, "")
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onAddProduct(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, err := b.shop.StartAddProduct(ctx, c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}

func (b *Bot) onCategories(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, err := b.shop.ManageCategories(ctx, c.Sender().ID)
	if err != nil {
		return b.fail(c, err)
	}
	return b.deliver(c, r)
}
