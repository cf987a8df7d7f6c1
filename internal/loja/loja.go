package loja

import (
	"time"

	"github.com/feiraonline/feira-backend/internal/product"
	"github.com/feiraonline/feira-backend/internal/vendor"
)

// StorePage is the public view of a single store: the vendor's public
// details plus every product currently in stock.
type StorePage struct {
	Vendor   vendor.Vendor     `json:"vendor"`
	Products []product.Product `json:"products"`
}

// StoreInfo is one entry of the public store directory.
type StoreInfo struct {
	ID           string    `json:"id"`
	Nome         string    `json:"nome"`
	NomeLoja     string    `json:"nome_loja"`
	Telefone     string    `json:"telefone"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
