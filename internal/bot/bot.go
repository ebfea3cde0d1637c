// Package bot adapts the transport-free dialogue layer to Telegram: it
// registers commands and callbacks, turns Render values into telebot calls,
// and feeds free-text messages into the active flow.
package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/conversation"
	"github.com/m3rciful/shopbot/internal/service"
)

// Reply keyboard labels. They double as command aliases so tapping a button
// routes like typing the command.
const (
	labelCatalog    = "🛍 Catalog"
	labelCart       = "🛒 Cart"
	labelOrders     = "📦 Orders"
	labelAddProduct = "➕ Add product"
	labelCategories = "🗂 Categories"
)

const retryText = "Something went wrong, please try again."

// Bot wires the storefront dialogue into telebot handlers.
type Bot struct {
	shop   *conversation.Shop
	access *service.Access
}

// New builds the adapter.
func New(shop *conversation.Shop, access *service.Access) *Bot {
	return &Bot{shop: shop, access: access}
}

// Registry returns the command and callback registry for the bot runtime.
func (b *Bot) Registry() *tg.Registry {
	reg := tg.NewRegistry()
	b.registerCommands(reg)
	b.registerCallbacks(reg)
	b.registerSteps()

	reg.SetTextFallback(func(c tele.Context) error {
		return helpers.SendText(c, "I did not catch that. Use the keyboard below.",
			&tele.SendOptions{ReplyMarkup: b.menuFor(c.Sender().ID)})
	})
	return reg
}

// registerSteps binds every dialogue step to the flow input handler. The
// conversation layer dispatches on the user's actual flow and step, so one
// handler serves them all.
func (b *Bot) registerSteps() {
	steps := []state.Step{
		conversation.StepEnterName,
		conversation.StepEnterPhone,
		conversation.StepEnterAddress,
		conversation.StepProductName,
		conversation.StepProductDescription,
		conversation.StepProductPrice,
		conversation.StepProductCategory,
		conversation.StepCategoryName,
	}
	for _, step := range steps {
		state.RegisterHandler(step, b.onFlowText)
	}
}

func (b *Bot) onFlowText(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	r, handled, err := b.shop.Input(ctx, c.Sender().ID, c.Text())
	if err != nil {
		return b.fail(c, err)
	}
	if !handled {
		return nil
	}
	return b.deliver(c, r)
}

// deliver turns a Render into telebot calls. Callback queries are always
// answered exactly once, with the toast or alert when one is set.
func (b *Bot) deliver(c tele.Context, r conversation.Render) error {
	if c.Callback() != nil {
		resp := &tele.CallbackResponse{Text: r.Toast}
		if r.Alert != "" {
			resp.Text = r.Alert
			resp.ShowAlert = true
		}
		_ = c.Respond(resp)
		if r.Text == "" {
			return nil
		}
	}

	markup := inlineMarkup(r.Keyboard)
	if r.Edit {
		if markup != nil {
			return c.EditOrSend(r.Text, markup)
		}
		return c.EditOrSend(r.Text)
	}
	opts := &tele.SendOptions{}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	return helpers.SendText(c, r.Text, opts)
}

// fail tells the user to retry and propagates the error so the router logs
// it with its code.
func (b *Bot) fail(c tele.Context, err error) error {
	if c.Callback() != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: retryText, ShowAlert: true})
	} else {
		_ = helpers.SendText(c, retryText)
	}
	return err
}

func (b *Bot) menuFor(userID int64) *tele.ReplyMarkup {
	if b.access.Allowed(userID) {
		return keyboard.ReplyButtons(
			[]string{labelCatalog, labelCart},
			[]string{labelAddProduct, labelCategories},
			[]string{labelOrders},
		)
	}
	return keyboard.ReplyButtons([]string{labelCatalog, labelCart})
}

func inlineMarkup(rows [][]conversation.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	ib := make([][]keyboard.InlineBtn, len(rows))
	for i, buttons := range rows {
		for _, button := range buttons {
			ib[i] = append(ib[i], keyboard.InlineBtn{
				Text:   button.Label,
				Unique: button.Action,
				Data:   button.Payload,
			})
		}
	}
	return keyboard.InlineButtonsRows(ib...)
}
