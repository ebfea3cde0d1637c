// Package conversation implements the storefront dialogue: what the bot says
// and which choices it offers in every situation. It is transport-free; the
// telegram adapter in internal/bot turns Render values into messages.
package conversation

import "github.com/shopspring/decimal"

// Callback actions offered on inline keyboards. The transport encodes them
// together with their payload and routes taps back by action name.
const (
	ActionCategory    = "category"
	ActionProduct     = "product"
	ActionCartAdd     = "cart_add"
	ActionCartIncr    = "cart_incr"
	ActionCartDecr    = "cart_decr"
	ActionCartDel     = "cart_del"
	ActionOrderCreate = "order_create"
	ActionToCatalog   = "to_catalog"

	ActionAdminOrder      = "admin_order"
	ActionToOrders        = "to_orders"
	ActionOrderStatus     = "order_status"
	ActionManageCats      = "manage_categories"
	ActionCategoryAdd     = "category_add"
	ActionCategoryDelMenu = "category_del_menu"
	ActionCategoryDel     = "category_del"
	ActionProductCategory = "product_category"
)

// Button is a single inline choice. Action selects the callback route and
// Payload carries the target id (or "id|status" for status changes).
type Button struct {
	Label   string
	Action  string
	Payload string
}

// Render is one step of the dialogue: the text to send, the choices to
// attach, and how to deliver it.
type Render struct {
	Text     string
	Keyboard [][]Button
	// Toast is a short non-blocking notification shown on a button tap.
	Toast string
	// Alert is like Toast but demands a dismissal from the user.
	Alert string
	// Edit replaces the tapped message in place instead of sending a new one.
	Edit bool
}

func textRender(text string) Render { return Render{Text: text} }

func btn(label, action, payload string) Button {
	return Button{Label: label, Action: action, Payload: payload}
}

func row(buttons ...Button) []Button { return buttons }

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
