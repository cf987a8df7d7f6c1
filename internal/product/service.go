package product

import (
	"time"

	"github.com/feiraonline/feira-backend/internal/paging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id string) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	return WithDerived(p), nil
}

func (s *Service) ListByVendor(vendorID string, page paging.Params) ([]Product, int, error) {
	items, total, err := s.repo.ListByVendor(vendorID, page)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i] = WithDerived(items[i])
	}
	return items, total, nil
}

func (s *Service) Create(vendorID string, p Product) (Product, error) {
	if err := validateFields(p); err != nil {
		return Product{}, err
	}
	p.ID = uuid.NewString()
	p.VendorID = vendorID
	p.CreatedAt = time.Now().UTC()
	created, err := s.repo.Create(p)
	if err != nil {
		return Product{}, err
	}
	return WithDerived(created), nil
}

// Update replaces the mutable fields of a product. The caller's vendor id
// must match the owning vendor; the owning vendor and creation timestamp
// never change.
func (s *Service) Update(vendorID, id string, p Product) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	if existing.VendorID != vendorID {
		return Product{}, ErrNotOwner
	}
	if err := validateFields(p); err != nil {
		return Product{}, err
	}

	p.VendorID = existing.VendorID
	p.CreatedAt = existing.CreatedAt
	updated, err := s.repo.Update(id, p)
	if err != nil {
		return Product{}, err
	}
	return WithDerived(updated), nil
}

func (s *Service) Delete(vendorID, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}

// validateFields enforces the numeric invariants on write. The handler
// already reports per-field errors; this is the last line of defence so no
// repository can be handed a negative price or stock.
func validateFields(p Product) error {
	if p.Preco.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if p.Quantidade < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
