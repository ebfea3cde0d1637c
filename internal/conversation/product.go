package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/service"
)

// StartAddProduct begins the add-product flow for an administrator.
func (s *Shop) StartAddProduct(ctx context.Context, userID int64) (Render, error) {
	if err := s.access.Require(userID); err != nil {
		r, _ := recoverable(err)
		return r, nil
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return Render{}, err
	}
	if len(categories) == 0 {
		return textRender("Create a category first, there is nowhere to put the product."), nil
	}

	s.dialogs.Start(userID, FlowAddProduct, StepProductName)
	return textRender("New product. What is its name?"), nil
}

func (s *Shop) addProductInput(ctx context.Context, userID int64, step state.Step, text string) (Render, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return textRender("Please answer with a text message."), nil
	}

	switch step {
	case StepProductName:
		s.dialogs.SetField(userID, fieldName, text)
		s.dialogs.Advance(userID, StepProductDescription)
		return textRender("Now a short description."), nil

	case StepProductDescription:
		s.dialogs.SetField(userID, fieldDescription, text)
		s.dialogs.Advance(userID, StepProductPrice)
		return textRender("What does it cost? Send a number, e.g. 19.90."), nil

	case StepProductPrice:
		price, err := parsePrice(text)
		if err != nil {
			// Bad input repeats the step; nothing is stored.
			r, _ := recoverable(err)
			return r, nil
		}
		s.dialogs.SetField(userID, fieldPrice, price.String())
		s.dialogs.Advance(userID, StepProductCategory)
		return s.categoryPicker(ctx)

	case StepProductCategory:
		return textRender("Pick a category with the buttons above."), nil

	default:
		s.dialogs.Cancel(userID)
		return textRender("Something went off track, the product was not created. Start over."), nil
	}
}

// SelectProductCategory finishes the add-product flow from the category
// keyboard tap.
func (s *Shop) SelectProductCategory(ctx context.Context, userID, categoryID int64) (Render, error) {
	flow, step := s.dialogs.Current(userID)
	if flow != FlowAddProduct || step != StepProductCategory {
		return Render{Alert: "This keyboard is no longer active."}, nil
	}

	fields := s.dialogs.Complete(userID)
	price, err := parsePrice(fieldString(fields, fieldPrice))
	if err != nil {
		return textRender("Something went off track, the product was not created. Start over."), nil
	}

	product, err := s.catalog.AddProduct(ctx, userID, models.ProductDraft{
		Name:        fieldString(fields, fieldName),
		Description: fieldString(fields, fieldDescription),
		Price:       price,
		CategoryID:  categoryID,
	})
	if err != nil {
		if r, ok := recoverable(err); ok {
			return r, nil
		}
		return Render{}, err
	}

	return textRender(fmt.Sprintf("Product %q added at %s.", product.Name, money(product.Price))), nil
}

func (s *Shop) categoryPicker(ctx context.Context) (Render, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return Render{}, err
	}
	r := Render{Text: "Which category does it belong to?"}
	for _, category := range categories {
		r.Keyboard = append(r.Keyboard, row(
			btn(category.Name, ActionProductCategory, strconv.FormatInt(category.ID, 10)),
		))
	}
	return r, nil
}

func parsePrice(text string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil || price.IsNegative() {
		return decimal.Zero, service.ErrInvalidPrice
	}
	return price, nil
}
