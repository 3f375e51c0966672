package domain

import "time"

// CartItem is one line of a user's cart. Quantity is always >= 1; removing
// the last unit removes the line.
type CartItem struct {
	ProductID string
	Quantity  int
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CartItems    []CartItem
	CreatedAt    time.Time
}

// IsAdmin reports whether the user can reach admin-gated routes.
func (u User) IsAdmin() bool { return u.Role == string(RoleAdmin) }
