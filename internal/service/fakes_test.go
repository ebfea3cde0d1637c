package service

import (
	"context"

	"github.com/m3rciful/shopbot/internal/models"
	"github.com/m3rciful/shopbot/internal/repository"
)

type cartLine struct {
	id        int64
	userID    int64
	productID int64
	quantity  int
}

// memStore is an in-memory stand-in for the Postgres store. It mirrors the
// real semantics: unique category names, per-user cart lines keyed by
// product, snapshot prices on order creation.
type memStore struct {
	categories []models.Category
	products   map[int64]models.Product
	lines      []*cartLine
	orders     []models.Order
	orderItems map[int64][]models.OrderItem
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[int64]models.Product),
		orderItems: make(map[int64][]models.OrderItem),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) Categories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), m.categories...), nil
}

func (m *memStore) ProductsByCategory(_ context.Context, categoryID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) Product(_ context.Context, productID int64) (models.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return models.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *memStore) AddCategory(_ context.Context, name string) (models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return models.Category{}, repository.ErrDuplicate
		}
	}
	c := models.Category{ID: m.id(), Name: name}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *memStore) DeleteCategory(_ context.Context, categoryID int64) (bool, error) {
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	for i, c := range m.categories {
		if c.ID == categoryID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return false, nil
		}
	}
	return false, repository.ErrNotFound
}

func (m *memStore) AddProduct(_ context.Context, draft models.ProductDraft) (models.Product, error) {
	p := models.Product{
		ID:          m.id(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *memStore) Add(_ context.Context, userID, productID int64) error {
	for _, l := range m.lines {
		if l.userID == userID && l.productID == productID {
			l.quantity++
			return nil
		}
	}
	m.lines = append(m.lines, &cartLine{id: m.id(), userID: userID, productID: productID, quantity: 1})
	return nil
}

func (m *memStore) Items(_ context.Context, userID int64) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, l := range m.lines {
		if l.userID != userID {
			continue
		}
		p := m.products[l.productID]
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

func (m *memStore) Adjust(_ context.Context, lineID int64, dir models.Direction) (bool, error) {
	for i, l := range m.lines {
		if l.id != lineID {
			continue
		}
		if dir == models.Increment {
			l.quantity++
		} else if l.quantity > 1 {
			l.quantity--
		} else {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
		}
		return true, nil
	}
	return false, nil
}

func (m *memStore) Remove(_ context.Context, lineID int64) error {
	for i, l := range m.lines {
		if l.id == lineID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) CreateOrder(ctx context.Context, userID int64, contact models.Contact) (models.Order, error) {
	items, _ := m.Items(ctx, userID)
	if len(items) == 0 {
		return models.Order{}, repository.ErrEmptyCart
	}

	order := models.Order{
		ID:      m.id(),
		UserID:  userID,
		Name:    contact.Name,
		Phone:   contact.Phone,
		Address: contact.Address,
		Status:  models.StatusNew,
	}
	for _, item := range items {
		m.orderItems[order.ID] = append(m.orderItems[order.ID], models.OrderItem{
			ID:          m.id(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.ProductPrice,
			ProductName: item.ProductName,
		})
		order.TotalCost = order.TotalCost.Add(item.Subtotal())
		_ = m.Remove(ctx, item.ID)
	}
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *memStore) Orders(_ context.Context, status string) ([]models.Order, error) {
	var out []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if status == "" || m.orders[i].Status == status {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

func (m *memStore) OrderDetails(_ context.Context, orderID int64) (models.OrderDetails, error) {
	for _, o := range m.orders {
		if o.ID == orderID {
			return models.OrderDetails{Order: o, Items: m.orderItems[orderID]}, nil
		}
	}
	return models.OrderDetails{}, repository.ErrNotFound
}

func (m *memStore) UpdateOrderStatus(_ context.Context, orderID int64, status string) error {
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}
