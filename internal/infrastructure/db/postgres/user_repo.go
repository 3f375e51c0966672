package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	return u, err
}

// loadCart attaches the user's cart lines, oldest first, mirroring the
// document model where the cart is embedded in the user record.
func (r *UserRepo) loadCart(ctx context.Context, u *domain.User) error {
	const q = `
SELECT product_id, quantity
FROM cart_items
WHERE user_id = $1
ORDER BY added_at;
`
	rows, err := r.db.QueryContext(ctx, q, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return err
		}
		u.CartItems = append(u.CartItems, item)
	}
	return rows.Err()
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users
WHERE email = $1
LIMIT 1;
`
	u, err := r.scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	if err := r.loadCart(ctx, &u); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users
WHERE id = $1
LIMIT 1;
`
	u, err := r.scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	if err := r.loadCart(ctx, &u); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = string(domain.RoleCustomer)
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, name, email, password_hash, role, created_at;
`
	created, err := r.scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
	))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}
