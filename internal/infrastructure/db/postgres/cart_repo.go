package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Items(ctx context.Context, userID string) ([]domain.CartItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrMissingField("user_id")
	}

	const q = `
SELECT product_id, quantity
FROM cart_items
WHERE user_id = $1
ORDER BY added_at;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// AddItem inserts a new line with quantity 1 or bumps an existing line.
func (r *CartRepo) AddItem(ctx context.Context, userID, productID string) error {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + 1;
`
	if _, err := r.db.ExecContext(ctx, q, userID, productID); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID,
	); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

// SetQuantity updates an existing line; the line must already exist.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCartItemNotFound()
	}
	return nil
}
