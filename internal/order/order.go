package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order. The only legal path is
// novo → aceito → em_preparo → entregue; cancelado is reachable from any
// non-terminal state. entregue and cancelado are terminal.
type Status string

const (
	StatusNovo      Status = "novo"
	StatusAceito    Status = "aceito"
	StatusEmPreparo Status = "em_preparo"
	StatusEntregue  Status = "entregue"
	StatusCancelado Status = "cancelado"
)

var transitions = map[Status][]Status{
	StatusNovo:      {StatusAceito, StatusCancelado},
	StatusAceito:    {StatusEmPreparo, StatusCancelado},
	StatusEmPreparo: {StatusEntregue, StatusCancelado},
	StatusEntregue:  {},
	StatusCancelado: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is an accepted purchase. It is append-only history: after intake
// the only mutation allowed is a status transition, so the dashboard can
// trust totals forever. Item prices are snapshots taken at intake; later
// product edits never change them.
type Order struct {
	ID              string          `json:"id"`
	VendorID        string          `json:"vendor_id"`
	ClienteNome     string          `json:"cliente_nome"`
	ClienteTelefone string          `json:"cliente_telefone"`
	ClienteEndereco string          `json:"cliente_endereco"`
	Observacoes     *string         `json:"observacoes,omitempty"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem is one line of an order. Nome and Preco are copied from the
// product at order time, not joined live.
type OrderItem struct {
	ProductID  string          `json:"product_id"`
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
}

// Filter narrows a vendor's order listing. All criteria are evaluated over
// the full matching set before pagination, never over a single page.
type Filter struct {
	Status  Status
	Cliente string
	// From is inclusive, To exclusive. Zero values mean unbounded.
	From time.Time
	To   time.Time
}

func (f Filter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Cliente != "" &&
		!strings.Contains(strings.ToLower(o.ClienteNome), strings.ToLower(f.Cliente)) {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !o.CreatedAt.Before(f.To) {
		return false
	}
	return true
}
