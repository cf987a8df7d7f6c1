package product

import (
	"database/sql"

	"github.com/feiraonline/feira-backend/internal/paging"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `id, vendor_id, nome, descricao, preco, quantidade, categoria, imagem, created_at`

	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	listProductsByVendorQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE vendor_id = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3
	`
	countProductsByVendorQuery = `SELECT COUNT(*) FROM products WHERE vendor_id = $1`

	listInStockByVendorQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE vendor_id = $1 AND quantidade > 0
		ORDER BY created_at, id
	`
	countInStockByVendorQuery = `SELECT COUNT(*) FROM products WHERE vendor_id = $1 AND quantidade > 0`

	categoriesByVendorQuery = `
		SELECT DISTINCT categoria
		FROM products
		WHERE vendor_id = $1 AND categoria <> ''
		ORDER BY categoria
	`

	insertProductQuery = `
		INSERT INTO products (id, vendor_id, nome, descricao, preco, quantidade, categoria, imagem, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	updateProductQuery = `
		UPDATE products
		SET nome = $1,
			descricao = $2,
			preco = $3,
			quantidade = $4,
			categoria = $5,
			imagem = $6
		WHERE id = $7
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	// The WHERE guard makes the check-and-decrement a single atomic
	// statement: concurrent checkouts against the same row serialize on the
	// row lock and the losing request matches zero rows instead of driving
	// quantidade negative.
	decrementStockQuery = `
		UPDATE products
		SET quantidade = quantidade - $2
		WHERE id = $1 AND quantidade >= $2
		RETURNING quantidade
	`
	incrementStockQuery = `
		UPDATE products
		SET quantidade = quantidade + $2
		WHERE id = $1
	`
	getQuantityQuery = `SELECT quantidade FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByVendor(vendorID string, page paging.Params) ([]Product, int, error) {
	var total int
	if err := r.db.QueryRow(countProductsByVendorQuery, vendorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(listProductsByVendorQuery, vendorID, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) ListInStockByVendor(vendorID string) ([]Product, error) {
	rows, err := r.db.Query(listInStockByVendorQuery, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CountInStockByVendor(vendorID string) (int, error) {
	var count int
	err := r.db.QueryRow(countInStockByVendorQuery, vendorID).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CategoriesByVendor(vendorID string) ([]string, error) {
	rows, err := r.db.Query(categoriesByVendorQuery, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	imagem := sql.NullString{}
	if p.Imagem != nil {
		imagem = sql.NullString{String: *p.Imagem, Valid: true}
	}
	_, err := r.db.Exec(insertProductQuery,
		p.ID, p.VendorID, p.Nome, p.Descricao, p.Preco, p.Quantidade, p.Categoria, imagem, p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	imagem := sql.NullString{}
	if p.Imagem != nil {
		imagem = sql.NullString{String: *p.Imagem, Valid: true}
	}
	res, err := r.db.Exec(updateProductQuery,
		p.Nome, p.Descricao, p.Preco, p.Quantidade, p.Categoria, imagem, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DecrementStock(id string, qty int) (int, error) {
	var remaining int
	err := r.db.QueryRow(decrementStockQuery, id, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	// zero rows matched: either the product is gone or stock was too low
	var available int
	if err := r.db.QueryRow(getQuantityQuery, id).Scan(&available); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return available, ErrInsufficientStock
}

func (r *PostgresRepository) IncrementStock(id string, qty int) error {
	res, err := r.db.Exec(incrementStockQuery, id, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var imagem sql.NullString
	err := row.Scan(&p.ID, &p.VendorID, &p.Nome, &p.Descricao, &p.Preco, &p.Quantidade, &p.Categoria, &imagem, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	if imagem.Valid {
		s := imagem.String
		p.Imagem = &s
	}
	return p, nil
}
