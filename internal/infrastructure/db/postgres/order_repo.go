package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts the order and its items in one transaction. The unique
// payment_session_id makes a replayed success callback return the existing
// order instead of creating a duplicate.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
INSERT INTO orders (id, user_id, total_cents, payment_session_id)
VALUES ($1,$2,$3,$4)
RETURNING created_at;
`
	err = tx.QueryRowContext(ctx, q, o.ID, o.UserID, o.TotalCents, o.PaymentSessionID).Scan(&o.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return r.GetBySessionID(ctx, o.PaymentSessionID)
		}
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}

	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price_cents) VALUES ($1,$2,$3,$4)`,
			o.ID, item.ProductID, item.Quantity, item.PriceCents,
		); err != nil {
			return domain.Order{}, domain.ErrDBUnavailable(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}
	return o, nil
}

func (r *OrderRepo) GetBySessionID(ctx context.Context, sessionID string) (domain.Order, error) {
	const q = `
SELECT id, user_id, total_cents, payment_session_id, created_at
FROM orders
WHERE payment_session_id = $1
LIMIT 1;
`
	var o domain.Order
	err := r.db.QueryRowContext(ctx, q, sessionID).Scan(
		&o.ID, &o.UserID, &o.TotalCents, &o.PaymentSessionID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound()
		}
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, price_cents FROM order_items WHERE order_id = $1`, o.ID)
	if err != nil {
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.PriceCents); err != nil {
			return domain.Order{}, domain.ErrDBUnavailable(err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, domain.ErrDBUnavailable(err)
	}
	return o, nil
}

// SalesTotals aggregates order count and revenue across all time.
func (r *OrderRepo) SalesTotals(ctx context.Context) (int64, int64, error) {
	var sales, revenue int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_cents), 0) FROM orders`,
	).Scan(&sales, &revenue)
	if err != nil {
		return 0, 0, domain.ErrDBUnavailable(err)
	}
	return sales, revenue, nil
}

// DailySales buckets orders by day. Days with no orders are absent; the
// analytics service zero-fills them.
func (r *OrderRepo) DailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	const q = `
SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_cents), 0)
FROM orders
WHERE created_at >= $1 AND created_at <= $2
GROUP BY day
ORDER BY day;
`
	rows, err := r.db.QueryContext(ctx, q, start, end)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.DailySales
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Day, &d.Sales, &d.RevenueCents); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
