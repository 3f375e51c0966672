package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/shopstream/storefront/internal/transport/http/handlers"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
)

type Deps struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Products  *handlers.ProductsHandler
	Cart      *handlers.CartHandler
	Coupons   *handlers.CouponsHandler
	Checkout  *handlers.CheckoutHandler
	Analytics *handlers.AnalyticsHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/auth", func(r chi.Router) {
		// Credential endpoints get a tighter per-IP budget.
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(
				20,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
			r.Post("/signup", deps.Auth.Signup)
			r.Post("/login", deps.Auth.Login)
		})
		r.Post("/logout", deps.Auth.Logout)
		r.Post("/refreshToken", deps.Auth.Refresh)
		r.With(deps.AuthMW).Get("/profile", deps.Auth.Profile)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/featured", deps.Products.Featured)
		r.Get("/recommended", deps.Products.Recommended)
		r.Get("/category/{category}", deps.Products.ByCategory)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)
			r.Get("/", deps.Products.List)
			r.Post("/", deps.Products.Create)
			r.Patch("/{id}", deps.Products.ToggleFeatured)
			r.Delete("/{id}", deps.Products.Delete)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/", deps.Cart.Get)
		r.Post("/", deps.Cart.Add)
		r.Delete("/", deps.Cart.Remove)
		r.Put("/{id}", deps.Cart.UpdateQuantity)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/", deps.Coupons.Get)
		r.Get("/validate", deps.Coupons.Validate)
		r.Post("/validate", deps.Coupons.Validate)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Post("/create-checkout-session", deps.Checkout.CreateSession)
		r.Post("/checkout-success", deps.Checkout.Success)
	})

	r.With(deps.AuthMW, deps.AdminMW).Get("/analytics", deps.Analytics.Get)

	return r
}
