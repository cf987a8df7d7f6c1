package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feiraonline/feira-backend/internal/paging"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, vendor_id, cliente_nome, cliente_telefone, cliente_endereco, observacoes, items, total, status, created_at`

	insertOrderQuery = `
		INSERT INTO orders (id, vendor_id, cliente_nome, cliente_telefone, cliente_endereco, observacoes, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	getOrderByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	listAllByVendorQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE vendor_id = $1
		ORDER BY created_at, id
	`
	updateOrderStatusQuery = `UPDATE orders SET status = $2 WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	obs := sql.NullString{}
	if ord.Observacoes != nil {
		obs = sql.NullString{String: *ord.Observacoes, Valid: true}
	}

	_, err = r.db.Exec(insertOrderQuery,
		ord.ID,
		ord.VendorID,
		ord.ClienteNome,
		ord.ClienteTelefone,
		ord.ClienteEndereco,
		obs,
		itemsJSON,
		ord.Total,
		string(ord.Status),
		ord.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

// ListByVendor applies the filter in SQL so the total reflects the whole
// matching set, not whatever page the caller happens to hold.
func (r *PostgresRepository) ListByVendor(vendorID string, f Filter, page paging.Params) ([]Order, int, error) {
	where, args := buildFilter(vendorID, f)

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE ` + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM orders WHERE %s ORDER BY created_at, id OFFSET $%d LIMIT $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(listQuery, append(args, page.Skip, page.Limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ord)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) ListAllByVendor(vendorID string) ([]Order, error) {
	rows, err := r.db.Query(listAllByVendorQuery, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id string, status Status) error {
	res, err := r.db.Exec(updateOrderStatusQuery, id, string(status))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func buildFilter(vendorID string, f Filter) (string, []any) {
	conds := []string{"vendor_id = $1"}
	args := []any{vendorID}

	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Cliente != "" {
		args = append(args, "%"+f.Cliente+"%")
		conds = append(conds, fmt.Sprintf("cliente_nome ILIKE $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var obs sql.NullString
	var itemsJSON []byte
	var status string
	err := row.Scan(
		&ord.ID,
		&ord.VendorID,
		&ord.ClienteNome,
		&ord.ClienteTelefone,
		&ord.ClienteEndereco,
		&obs,
		&itemsJSON,
		&ord.Total,
		&status,
		&ord.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if obs.Valid {
		s := obs.String
		ord.Observacoes = &s
	}
	ord.Status = Status(status)
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	return ord, nil
}
