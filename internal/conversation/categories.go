package conversation

import (
	"context"
	"fmt"
	"strconv"
)

// ManageCategories renders the category administration menu.
func (s *Shop) ManageCategories(ctx context.Context, userID int64) (Render, error) {
	if err := s.access.Require(userID); err != nil {
		r, _ := recoverable(err)
		return r, nil
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return Render{}, err
	}

	text := "Categories:\n"
	if len(categories) == 0 {
		text = "No categories yet."
	}
	for _, category := range categories {
		text += fmt.Sprintf("• %s\n", category.Name)
	}
	return Render{
		Text: text,
		Keyboard: [][]Button{
			row(btn("Add category", ActionCategoryAdd, "")),
			row(btn("Delete category", ActionCategoryDelMenu, "")),
		},
	}, nil
}

// StartAddCategory begins the single-step add-category flow.
func (s *Shop) StartAddCategory(userID int64) (Render, error) {
	if err := s.access.Require(userID); err != nil {
		r, _ := recoverableToast(err)
		return r, nil
	}
	s.dialogs.Start(userID, FlowAddCategory, StepCategoryName)
	return textRender("Name of the new category?"), nil
}

func (s *Shop) addCategoryInput(ctx context.Context, userID int64, text string) (Render, error) {
	category, err := s.catalog.AddCategory(ctx, userID, text)
	if err != nil {
		if r, ok := recoverable(err); ok {
			// The step repeats until the name is acceptable.
			return r, nil
		}
		s.dialogs.Cancel(userID)
		return Render{}, err
	}

	s.dialogs.Cancel(userID)
	return textRender(fmt.Sprintf("Category %q created.", category.Name)), nil
}

// DeleteCategoryMenu lists categories as delete targets.
func (s *Shop) DeleteCategoryMenu(ctx context.Context, userID int64) (Render, error) {
	if err := s.access.Require(userID); err != nil {
		r, _ := recoverableToast(err)
		return r, nil
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return Render{}, err
	}
	if len(categories) == 0 {
		return Render{Text: "No categories to delete.", Edit: true}, nil
	}

	r := Render{Text: "Delete which category? Only empty ones can go.", Edit: true}
	for _, category := range categories {
		r.Keyboard = append(r.Keyboard, row(
			btn("🗑 "+category.Name, ActionCategoryDel, strconv.FormatInt(category.ID, 10)),
		))
	}
	r.Keyboard = append(r.Keyboard, row(btn("« Back", ActionManageCats, "")))
	return r, nil
}

// DeleteCategory removes an empty category. A category still holding
// products is refused and nothing changes.
func (s *Shop) DeleteCategory(ctx context.Context, userID, categoryID int64) (Render, error) {
	if err := s.catalog.DeleteCategory(ctx, userID, categoryID); err != nil {
		if r, ok := recoverableToast(err); ok {
			return r, nil
		}
		return Render{}, err
	}
	return Render{Text: "Category deleted.", Edit: true}, nil
}
