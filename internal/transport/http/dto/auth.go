package dto

import (
	"strings"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if r.Name == "" {
		return domain.ErrMissingField("name")
	}
	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if !strings.Contains(r.Email, "@") {
		return domain.ErrInvalidField("email", "invalid format")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	if len(r.Password) < 6 {
		return domain.ErrInvalidField("password", "min length 6")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

// UserView is the public shape of a user. The password hash never leaves
// the server.
type UserView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	CartItems []CartItemView `json:"cartItems"`
	CreatedAt time.Time      `json:"createdAt"`
}

type CartItemView struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func NewUserView(u domain.User) UserView {
	items := make([]CartItemView, 0, len(u.CartItems))
	for _, ci := range u.CartItems {
		items = append(items, CartItemView{ProductID: ci.ProductID, Quantity: ci.Quantity})
	}
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CartItems: items,
		CreatedAt: u.CreatedAt,
	}
}

type AuthData struct {
	User UserView `json:"user"`
}

type RefreshData struct {
	AccessToken string `json:"accessToken"`
}
