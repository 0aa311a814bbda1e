package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/catalog"
)

const productColumns = `id, name, sku, category, price, COALESCE(image,''),
		       COALESCE(current_description,''), last_generated`

// ProductRepo implements catalog.Repository against PostgreSQL.
type ProductRepo struct{ db *sql.DB }

// NewProductRepo creates a Postgres-backed product repository.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var last sql.NullTime
	if err := s.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Image,
		&p.CurrentDescription, &last); err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		p.LastGenerated = &t
	}
	return p, nil
}

var productOrder = map[domain.ProductSort]string{
	domain.SortByName:      "LOWER(name) ASC, id ASC",
	domain.SortByNameDesc:  "LOWER(name) DESC, id ASC",
	domain.SortByPrice:     "price ASC, id ASC",
	domain.SortByPriceDesc: "price DESC, id ASC",
}

func (r *ProductRepo) List(ctx context.Context, f catalog.ListFilter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.Category != "" {
		q += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", idx)
		args = append(args, f.Category)
		idx++
	}
	if f.Query != "" {
		q += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d OR sku ILIKE $%d)", idx, idx, idx)
		args = append(args, "%"+escapeLike(f.Query)+"%")
	}
	order, ok := productOrder[f.Sort]
	if !ok {
		order = productOrder[domain.SortByName]
	}
	q += " ORDER BY " + order

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) UpdateDescription(ctx context.Context, id int64, description string, at time.Time) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		UPDATE products SET current_description = $1, last_generated = $2
		WHERE id = $3
		RETURNING `+productColumns,
		description, at, id))
	if err == sql.ErrNoRows {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update description: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Upsert(ctx context.Context, p *domain.Product) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, sku, category, price, image, current_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			image = EXCLUDED.image,
			current_description = EXCLUDED.current_description
		RETURNING id
	`, p.Name, p.SKU, p.Category, p.Price, p.Image, p.CurrentDescription).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert product: %w", err)
	}
	return id, nil
}
