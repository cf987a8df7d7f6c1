package order

import (
	"errors"
	"sync"

	"github.com/feiraonline/feira-backend/internal/paging"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrNotOwner          = errors.New("order belongs to another vendor")
	ErrEmptyCart         = errors.New("order must contain at least one item")
	ErrInvalidTransition = errors.New("illegal status transition")
)

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	// ListByVendor returns one page of the vendor's orders plus the number
	// of orders matching the filter before pagination.
	ListByVendor(vendorID string, f Filter, page paging.Params) ([]Order, int, error)
	// ListAllByVendor returns every order of the vendor in creation order;
	// the dashboard folds over this.
	ListAllByVendor(vendorID string) ([]Order, error)
	UpdateStatus(id string, status Status) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		orders: make([]Order, 0, len(seed)),
	}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByVendor(vendorID string, f Filter, page paging.Params) ([]Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]Order, 0)
	for _, o := range r.orders {
		if o.VendorID == vendorID && f.Matches(o) {
			matching = append(matching, o)
		}
	}

	total := len(matching)
	lo, hi := page.Window(total)
	out := make([]Order, hi-lo)
	copy(out, matching[lo:hi])
	return out, total, nil
}

func (r *InMemoryRepository) ListAllByVendor(vendorID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.VendorID == vendorID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}
