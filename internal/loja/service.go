package loja

import (
	"sort"

	"github.com/feiraonline/feira-backend/internal/product"
	"github.com/feiraonline/feira-backend/internal/vendor"
)

// Service serves the public storefront reads. It composes the vendor and
// product stores instead of owning any state of its own.
type Service struct {
	vendors  vendor.Repository
	products product.Repository
}

func NewService(vendors vendor.Repository, products product.Repository) *Service {
	return &Service{vendors: vendors, products: products}
}

// Store resolves a public store page by slug. Only products with stock on
// hand are shown to customers.
func (s *Service) Store(nomeLoja string) (StorePage, error) {
	v, err := s.vendors.GetBySlug(nomeLoja)
	if err != nil {
		return StorePage{}, err
	}

	products, err := s.products.ListInStockByVendor(v.ID)
	if err != nil {
		return StorePage{}, err
	}
	for i := range products {
		products[i] = product.WithDerived(products[i])
	}

	return StorePage{
		Vendor:   vendor.Sanitize(v),
		Products: products,
	}, nil
}

// Directory lists every store for the homepage, newest first, with the
// count of products the store currently has in stock.
func (s *Service) Directory() ([]StoreInfo, error) {
	vendors := s.vendors.List()

	out := make([]StoreInfo, 0, len(vendors))
	for _, v := range vendors {
		count, err := s.products.CountInStockByVendor(v.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, StoreInfo{
			ID:           v.ID,
			Nome:         v.Nome,
			NomeLoja:     v.NomeLoja,
			Telefone:     v.Telefone,
			ProductCount: count,
			CreatedAt:    v.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Categories returns the distinct product categories of a store.
func (s *Service) Categories(nomeLoja string) ([]string, error) {
	v, err := s.vendors.GetBySlug(nomeLoja)
	if err != nil {
		return nil, err
	}
	return s.products.CategoriesByVendor(v.ID)
}
