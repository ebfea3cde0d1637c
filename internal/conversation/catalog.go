package conversation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m3rciful/shopbot/internal/models"
)

// ShowCatalog renders the category list.
func (s *Shop) ShowCatalog(ctx context.Context) (Render, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return Render{}, err
	}
	if len(categories) == 0 {
		return textRender("The catalog is empty for now, check back later."), nil
	}

	r := Render{Text: "Choose a category:"}
	for _, category := range categories {
		r.Keyboard = append(r.Keyboard, row(
			btn(category.Name, ActionCategory, strconv.FormatInt(category.ID, 10)),
		))
	}
	return r, nil
}

// ShowCategory renders a category's product list.
func (s *Shop) ShowCategory(ctx context.Context, categoryID int64) (Render, error) {
	products, err := s.catalog.ProductsByCategory(ctx, categoryID)
	if err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	if len(products) == 0 {
		return Render{
			Text:     "Nothing in this category yet.",
			Keyboard: [][]Button{row(btn("« Back to catalog", ActionToCatalog, ""))},
			Edit:     true,
		}, nil
	}

	r := Render{Text: "Choose a product:", Edit: true}
	for _, product := range products {
		label := fmt.Sprintf("%s — %s", product.Name, money(product.Price))
		r.Keyboard = append(r.Keyboard, row(
			btn(label, ActionProduct, strconv.FormatInt(product.ID, 10)),
		))
	}
	r.Keyboard = append(r.Keyboard, row(btn("« Back to catalog", ActionToCatalog, "")))
	return r, nil
}

// ShowProduct renders one product card with an add-to-cart button.
func (s *Shop) ShowProduct(ctx context.Context, productID int64) (Render, error) {
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}

	id := strconv.FormatInt(productID, 10)
	return Render{
		Text: productCard(product),
		Keyboard: [][]Button{
			row(btn("Add to cart 🛒", ActionCartAdd, id)),
			row(btn("« Back", ActionCategory, strconv.FormatInt(product.CategoryID, 10))),
		},
		Edit: true,
	}, nil
}

func productCard(p models.Product) string {
	return fmt.Sprintf("%s\n\n%s\n\nPrice: %s", p.Name, p.Description, money(p.Price))
}
