package domain

type Role string

const (
	// Customer is the default role for signups: own cart, coupons, checkout.
	RoleCustomer Role = "customer"
	// Admin additionally manages the catalog and reads analytics.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleCustomer) || r == string(RoleAdmin)
}
