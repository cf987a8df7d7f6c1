package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feiraonline/feira-backend/internal/order"
)

// TopProducts is how many entries the best-sellers ranking keeps. The
// ranking itself is computed over the vendor's full history before being
// truncated to this size.
const TopProducts = 5

// OrderHistory is the read-only slice of the order store the aggregator
// folds over.
type OrderHistory interface {
	ListAllByVendor(vendorID string) ([]order.Order, error)
}

type Service struct {
	orders OrderHistory
	loc    *time.Location

	// includeCancelled decides whether cancelled orders count towards the
	// totals. The historical behaviour summed every order regardless of
	// status, so the default configuration keeps them in.
	includeCancelled bool
}

func NewService(orders OrderHistory, loc *time.Location, includeCancelled bool) *Service {
	return &Service{orders: orders, loc: loc, includeCancelled: includeCancelled}
}

// Summary recomputes the dashboard from the vendor's committed orders on
// every call; no derived state is persisted, so a price edit or a new order
// is reflected immediately.
func (s *Service) Summary(vendorID string) (Summary, error) {
	orders, err := s.orders.ListAllByVendor(vendorID)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		TotalVendas:          decimal.Zero,
		VendasPorDia:         map[string]decimal.Decimal{},
		ProdutosMaisVendidos: []ProductSales{},
	}

	type rank struct {
		nome string
		qty  int
	}
	ranking := make([]rank, 0)
	index := map[string]int{} // nome -> position in ranking, first-seen order

	for _, ord := range orders {
		if !s.includeCancelled && ord.Status == order.StatusCancelado {
			continue
		}

		out.TotalVendas = out.TotalVendas.Add(ord.Total)
		out.QuantidadePedidos++

		dia := ord.CreatedAt.In(s.loc).Format("2006-01-02")
		out.VendasPorDia[dia] = out.VendasPorDia[dia].Add(ord.Total)

		for _, item := range ord.Items {
			if pos, ok := index[item.Nome]; ok {
				ranking[pos].qty += item.Quantidade
			} else {
				index[item.Nome] = len(ranking)
				ranking = append(ranking, rank{nome: item.Nome, qty: item.Quantidade})
			}
		}
	}

	// stable sort keeps first-seen order for equal quantities
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].qty > ranking[j].qty
	})
	for i, r := range ranking {
		if i == TopProducts {
			break
		}
		out.ProdutosMaisVendidos = append(out.ProdutosMaisVendidos, ProductSales{Nome: r.nome, Quantidade: r.qty})
	}

	return out, nil
}
