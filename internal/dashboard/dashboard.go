package dashboard

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Summary is the vendor dashboard payload. VendasPorDia keys are ISO dates
// (vendor-local); JSON object keys sort lexicographically, which for
// YYYY-MM-DD is ascending date order.
type Summary struct {
	TotalVendas          decimal.Decimal            `json:"total_vendas"`
	QuantidadePedidos    int                        `json:"quantidade_pedidos"`
	VendasPorDia         map[string]decimal.Decimal `json:"vendas_por_dia"`
	ProdutosMaisVendidos []ProductSales             `json:"produtos_mais_vendidos"`
}

// ProductSales is one entry of the best-sellers ranking. It serializes as a
// [name, quantity] pair for the pie-chart consumer.
type ProductSales struct {
	Nome       string
	Quantidade int
}

func (p ProductSales) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Nome, p.Quantidade})
}

func (p *ProductSales) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &p.Nome); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &p.Quantidade)
}
