package product

import (
	"errors"
	"sync"

	"github.com/feiraonline/feira-backend/internal/paging"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrNotOwner          = errors.New("product belongs to another vendor")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPrice      = errors.New("preco must be >= 0")
	ErrInvalidQuantity   = errors.New("quantidade must be a non-negative integer")
)

type Repository interface {
	GetByID(id string) (Product, error)
	// ListByVendor returns one page of the vendor's products together with
	// the total count before pagination, in a stable order.
	ListByVendor(vendorID string, page paging.Params) ([]Product, int, error)
	// ListInStockByVendor returns every product of the vendor with
	// quantidade > 0 (the public storefront view).
	ListInStockByVendor(vendorID string) ([]Product, error)
	CountInStockByVendor(vendorID string) (int, error)
	CategoriesByVendor(vendorID string) ([]string, error)
	Create(p Product) (Product, error)
	Update(id string, p Product) (Product, error)
	Delete(id string) error

	// DecrementStock atomically checks and decrements a product's stock.
	// It returns the quantity remaining after the decrement. If the stock
	// is lower than qty it returns the current quantity together with
	// ErrInsufficientStock and changes nothing. The check-and-decrement is
	// serialized against all other stock mutations of the same product.
	DecrementStock(id string, qty int) (int, error)
	// IncrementStock adds qty back to a product's stock. Used to undo
	// decrements when a multi-item order fails partway through.
	IncrementStock(id string, qty int) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
	}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByVendor(vendorID string, page paging.Params) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]Product, 0)
	for _, p := range r.storage {
		if p.VendorID == vendorID {
			matching = append(matching, p)
		}
	}

	total := len(matching)
	lo, hi := page.Window(total)
	out := make([]Product, hi-lo)
	copy(out, matching[lo:hi])
	return out, total, nil
}

func (r *InMemoryRepository) ListInStockByVendor(vendorID string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.VendorID == vendorID && p.Quantidade > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) CountInStockByVendor(vendorID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.storage {
		if p.VendorID == vendorID && p.Quantidade > 0 {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) CategoriesByVendor(vendorID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	out := make([]string, 0)
	for _, p := range r.storage {
		if p.VendorID == vendorID && p.Categoria != "" && !seen[p.Categoria] {
			seen[p.Categoria] = true
			out = append(out, p.Categoria)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DecrementStock(id string, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			if r.storage[i].Quantidade < qty {
				return r.storage[i].Quantidade, ErrInsufficientStock
			}
			r.storage[i].Quantidade -= qty
			return r.storage[i].Quantidade, nil
		}
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) IncrementStock(id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Quantidade += qty
			return nil
		}
	}
	return ErrNotFound
}
