package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity at or below which a product is flagged
// as running low on the vendor dashboard.
const LowStockThreshold = 5

// Product is a catalog entry owned by exactly one vendor. Quantidade is the
// live stock on hand and is never allowed to go negative. EstoqueBaixo is
// derived at read time and never stored, so it always reflects current stock.
type Product struct {
	ID           string          `json:"id"`
	VendorID     string          `json:"vendor_id"`
	Nome         string          `json:"nome"`
	Descricao    string          `json:"descricao"`
	Preco        decimal.Decimal `json:"preco"`
	Quantidade   int             `json:"quantidade"`
	Categoria    string          `json:"categoria"`
	Imagem       *string         `json:"imagem,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	EstoqueBaixo bool            `json:"estoque_baixo"`
}

// WithDerived fills in the read-time flags.
func WithDerived(p Product) Product {
	p.EstoqueBaixo = p.Quantidade > 0 && p.Quantidade <= LowStockThreshold
	return p
}
