package conversation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/repository"
	"github.com/m3rciful/shopbot/internal/service"
)

const testAdmin = int64(100)

type fakeLine struct {
	id        int64
	userID    int64
	productID int64
	quantity  int
}

// fakeStore implements the repository interfaces in memory for flow tests.
type fakeStore struct {
	categories []models.Category
	products   map[int64]models.Product
	lines      []*fakeLine
	orders     []models.Order
	orderItems map[int64][]models.OrderItem
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[int64]models.Product),
		orderItems: make(map[int64][]models.OrderItem),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Categories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeStore) ProductsByCategory(_ context.Context, categoryID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Product(_ context.Context, productID int64) (models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return models.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) AddCategory(_ context.Context, name string) (models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return models.Category{}, repository.ErrDuplicate
		}
	}
	c := models.Category{ID: f.id(), Name: name}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, categoryID int64) (bool, error) {
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	for i, c := range f.categories {
		if c.ID == categoryID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return false, nil
		}
	}
	return false, repository.ErrNotFound
}

func (f *fakeStore) AddProduct(_ context.Context, draft models.ProductDraft) (models.Product, error) {
	p := models.Product{
		ID:          f.id(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeStore) Add(_ context.Context, userID, productID int64) error {
	for _, l := range f.lines {
		if l.userID == userID && l.productID == productID {
			l.quantity++
			return nil
		}
	}
	f.lines = append(f.lines, &fakeLine{id: f.id(), userID: userID, productID: productID, quantity: 1})
	return nil
}

func (f *fakeStore) Items(_ context.Context, userID int64) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, l := range f.lines {
		if l.userID != userID {
			continue
		}
		p := f.products[l.productID]
		out = append(out, models.CartItem{
			ID:           l.id,
			UserID:       l.userID,
			ProductID:    l.productID,
			Quantity:     l.quantity,
			ProductName:  p.Name,
			ProductPrice: p.Price,
		})
	}
	return out, nil
}

func (f *fakeStore) Adjust(_ context.Context, lineID int64, dir models.Direction) (bool, error) {
	for i, l := range f.lines {
		if l.id != lineID {
			continue
		}
		if dir == models.Increment {
			l.quantity++
		} else if l.quantity > 1 {
			l.quantity--
		} else {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) Remove(_ context.Context, lineID int64) error {
	for i, l := range f.lines {
		if l.id == lineID {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, userID int64, contact models.Contact) (models.Order, error) {
	items, _ := f.Items(ctx, userID)
	if len(items) == 0 {
		return models.Order{}, repository.ErrEmptyCart
	}
	order := models.Order{
		ID:      f.id(),
		UserID:  userID,
		Name:    contact.Name,
		Phone:   contact.Phone,
		Address: contact.Address,
		Status:  models.StatusNew,
	}
	for _, item := range items {
		f.orderItems[order.ID] = append(f.orderItems[order.ID], models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.ProductPrice,
			ProductName: item.ProductName,
		})
		order.TotalCost = order.TotalCost.Add(item.Subtotal())
		_ = f.Remove(ctx, item.ID)
	}
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeStore) Orders(_ context.Context, status string) ([]models.Order, error) {
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if status == "" || f.orders[i].Status == status {
			out = append(out, f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeStore) OrderDetails(_ context.Context, orderID int64) (models.OrderDetails, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return models.OrderDetails{Order: o, Items: f.orderItems[orderID]}, nil
		}
	}
	return models.OrderDetails{}, repository.ErrNotFound
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, orderID int64, status string) error {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

// newTestShop wires a shop over the fake store with an in-memory dialogue
// manager that never expires sessions.
func newTestShop() (*Shop, *fakeStore, state.Manager) {
	store := newFakeStore()
	access := service.NewAccess([]int64{testAdmin})
	dialogs := state.NewMemoryManager(0)
	shop := New(
		service.NewCatalog(store, nil, access),
		service.NewCart(store, store),
		service.NewOrders(store, access),
		access,
		dialogs,
	)
	return shop, store, dialogs
}

func mustPrice(s string) decimal.Decimal { return decimal.RequireFromString(s) }
