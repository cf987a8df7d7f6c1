package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feiraonline/feira-backend/internal/paging"
	"github.com/feiraonline/feira-backend/internal/product"
)

// Catalog is the slice of the product store the intake service needs:
// point-in-time reads plus the serialized stock mutations.
type Catalog interface {
	GetByID(id string) (product.Product, error)
	DecrementStock(id string, qty int) (int, error)
	IncrementStock(id string, qty int) error
}

// InsufficientStockError reports the one failure that is routine in normal
// operation (two customers racing for the last units). It carries enough
// structure for the storefront to offer "reduce quantity" instead of a
// generic error.
type InsufficientStockError struct {
	ProductID string
	Nome      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested", e.Nome, e.Available, e.Requested)
}

// RequestedItem is one line of the client-held cart. The cart is a proposal,
// not a reservation: nothing in it is trusted beyond the product id and the
// desired quantity.
type RequestedItem struct {
	ProductID  string `json:"product_id"`
	Quantidade int    `json:"quantidade"`
}

type PlaceOrderRequest struct {
	VendorID        string
	ClienteNome     string
	ClienteTelefone string
	ClienteEndereco string
	Observacoes     *string
	Items           []RequestedItem
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// PlaceOrder validates the proposed cart against live stock and atomically
// materializes an order. Each product's check-and-decrement is serialized;
// if any line fails, decrements already applied for earlier lines are
// reversed so the order commits all-or-nothing. Prices and names are
// re-read from the catalog and snapshotted into the order at this moment.
func (s *Service) PlaceOrder(req PlaceOrderRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	// First pass: re-read every product, never trusting client-supplied
	// prices or stock snapshots.
	snapshots := make([]product.Product, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantidade <= 0 {
			return Order{}, fmt.Errorf("produto %s: %w", it.ProductID, product.ErrInvalidQuantity)
		}
		p, err := s.catalog.GetByID(it.ProductID)
		if err != nil {
			return Order{}, fmt.Errorf("produto %s: %w", it.ProductID, err)
		}
		if p.VendorID != req.VendorID {
			return Order{}, fmt.Errorf("produto %s: %w", it.ProductID, product.ErrNotFound)
		}
		snapshots = append(snapshots, p)
	}

	// Second pass: test-and-decrement per product. On failure, undo the
	// decrements already applied in this request.
	applied := make([]RequestedItem, 0, len(req.Items))
	for i, it := range req.Items {
		available, err := s.catalog.DecrementStock(it.ProductID, it.Quantidade)
		if err != nil {
			s.rollback(applied)
			if errors.Is(err, product.ErrInsufficientStock) {
				return Order{}, &InsufficientStockError{
					ProductID: it.ProductID,
					Nome:      snapshots[i].Nome,
					Available: available,
					Requested: it.Quantidade,
				}
			}
			return Order{}, fmt.Errorf("produto %s: %w", it.ProductID, err)
		}
		applied = append(applied, it)
	}

	items := make([]OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for i, it := range req.Items {
		line := OrderItem{
			ProductID:  it.ProductID,
			Nome:       snapshots[i].Nome,
			Preco:      snapshots[i].Preco,
			Quantidade: it.Quantidade,
		}
		items = append(items, line)
		total = total.Add(line.Preco.Mul(decimal.NewFromInt(int64(line.Quantidade))))
	}

	ord := Order{
		ID:              uuid.NewString(),
		VendorID:        req.VendorID,
		ClienteNome:     req.ClienteNome,
		ClienteTelefone: req.ClienteTelefone,
		ClienteEndereco: req.ClienteEndereco,
		Observacoes:     req.Observacoes,
		Items:           items,
		Total:           total,
		Status:          StatusNovo,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		s.rollback(applied)
		return Order{}, err
	}
	return created, nil
}

func (s *Service) rollback(applied []RequestedItem) {
	for _, it := range applied {
		// best effort; the product existed moments ago
		s.catalog.IncrementStock(it.ProductID, it.Quantidade)
	}
}

// AdvanceStatus moves an order along the status state machine on behalf of
// its owning vendor.
func (s *Service) AdvanceStatus(vendorID, orderID string, next Status) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.VendorID != vendorID {
		return Order{}, ErrNotOwner
	}
	if !next.Valid() || !ord.Status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, next)
	}

	if err := s.repo.UpdateStatus(orderID, next); err != nil {
		return Order{}, err
	}
	ord.Status = next
	return ord, nil
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByVendor(vendorID string, f Filter, page paging.Params) ([]Order, int, error) {
	return s.repo.ListByVendor(vendorID, f, page)
}
