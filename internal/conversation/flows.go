package conversation

import "github.com/m3rciful/shopbot/core/telegram/state"

// Dialogue flows. A user runs at most one flow at a time; starting a new one
// discards the previous session.
const (
	FlowCheckout    state.Flow = "checkout"
	FlowAddProduct  state.Flow = "add_product"
	FlowAddCategory state.Flow = "add_category"
)

// Checkout steps, in order.
const (
	StepEnterName    state.Step = "checkout.enter_name"
	StepEnterPhone   state.Step = "checkout.enter_phone"
	StepEnterAddress state.Step = "checkout.enter_address"
)

// Add-product steps, in order. The category is picked last, from an inline
// keyboard rather than free text.
const (
	StepProductName        state.Step = "add_product.enter_name"
	StepProductDescription state.Step = "add_product.enter_description"
	StepProductPrice       state.Step = "add_product.enter_price"
	StepProductCategory    state.Step = "add_product.select_category"
)

// Add-category single step.
const (
	StepCategoryName state.Step = "add_category.enter_name"
)

// Session field keys.
const (
	fieldName        = "name"
	fieldPhone       = "phone"
	fieldAddress     = "address"
	fieldDescription = "description"
	fieldPrice       = "price"
)
