package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price_cents, image_url, category, is_featured, created_at`

func scanProduct(s interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.ImageURL,
		&p.Category,
		&p.IsFeatured,
		&p.CreatedAt,
	)
	return p, err
}

func (r *ProductRepo) collect(rows *sql.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price_cents, image_url, category, is_featured)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + productColumns + `;`

	created, err := scanProduct(r.db.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Description, p.PriceCents, p.ImageURL, p.Category, p.IsFeatured,
	))
	if err != nil {
		return domain.Product{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, domain.ErrMissingField("id")
	}

	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1;`
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound()
		}
		return domain.Product{}, domain.ErrDBUnavailable(err)
	}
	return p, nil
}

func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const q = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[]);`
	rows, err := r.db.QueryContext(ctx, q, ids)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	out, err := r.collect(rows)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	out, err := r.collect(rows)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ProductRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE is_featured ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	out, err := r.collect(rows)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q, category)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	out, err := r.collect(rows)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// ListRandom powers the "recommended" strip: the document store's $sample
// becomes ORDER BY random(), fine at catalog scale.
func (r *ProductRepo) ListRandom(ctx context.Context, n int) ([]domain.Product, error) {
	if n <= 0 {
		n = 3
	}

	const q = `SELECT ` + productColumns + ` FROM products ORDER BY random() LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	out, err := r.collect(rows)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ProductRepo) SetFeatured(ctx context.Context, id string, featured bool) (domain.Product, error) {
	const q = `
UPDATE products SET is_featured = $2
WHERE id = $1
RETURNING ` + productColumns + `;`

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id, featured))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound()
		}
		return domain.Product{}, domain.ErrDBUnavailable(err)
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrProductNotFound()
	}
	return nil
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}
