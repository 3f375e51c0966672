package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/shopstream/storefront/internal/application/analytics"
	"github.com/shopstream/storefront/internal/application/auth"
	"github.com/shopstream/storefront/internal/application/cart"
	"github.com/shopstream/storefront/internal/application/catalog"
	"github.com/shopstream/storefront/internal/application/checkout"
	"github.com/shopstream/storefront/internal/application/coupon"
	"github.com/shopstream/storefront/internal/config"
	"github.com/shopstream/storefront/internal/infrastructure/db/postgres"
	"github.com/shopstream/storefront/internal/infrastructure/memory"
	"github.com/shopstream/storefront/internal/infrastructure/messaging/rabbitmq"
	stripeprovider "github.com/shopstream/storefront/internal/infrastructure/payment/stripe"
	"github.com/shopstream/storefront/internal/infrastructure/redis"
	"github.com/shopstream/storefront/internal/infrastructure/security"
	s3store "github.com/shopstream/storefront/internal/infrastructure/storage/s3"
	"github.com/shopstream/storefront/internal/logger"
	"github.com/shopstream/storefront/internal/transport/http/handlers"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
	"github.com/shopstream/storefront/internal/transport/http/response"
	"github.com/shopstream/storefront/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(dsn string, debug bool) (*sql.DB, error)

	NewRedis func(url string) (*redis.Client, error)

	NewPublisher func(url, exchange string) (checkout.EventPublisher, error)

	NewPaymentProvider func(secretKey string) checkout.PaymentProvider

	NewImageStore func(ctx context.Context, cfg s3store.Config) (catalog.ImageStore, error)
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (checkout.EventPublisher, error) {
			return rabbitmq.NewPublisher(url, exchange)
		},
		NewPaymentProvider: func(secretKey string) checkout.PaymentProvider {
			return stripeprovider.NewProvider(secretKey)
		},
		NewImageStore: func(ctx context.Context, cfg s3store.Config) (catalog.ImageStore, error) {
			return s3store.New(ctx, cfg)
		},
	}
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db (fail fast; nothing works without it)
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	userRepo := postgres.NewUserRepo(db)
	productRepo := postgres.NewProductRepo(db)
	cartRepo := postgres.NewCartRepo(db)
	couponRepo := postgres.NewCouponRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	// 2) redis: refresh token registry + featured cache. In dev a down Redis
	// degrades to in-memory; in prod it is a hard dependency.
	var registry auth.TokenRegistry
	var productCache catalog.Cache
	var cachePinger handlers.Pinger

	redisCli, err := deps.NewRedis(cfg.RedisURL)
	if err != nil {
		if cfg.Env != "dev" {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory token registry")
		registry = memory.NewTokenRegistry()
	} else {
		logger.Logger.Info().Msg("redis connected")
		cleanupFns = append(cleanupFns, func() { _ = redisCli.Close() })
		registry = redis.NewTokenRegistry(redisCli)
		productCache = redis.NewProductCache(redisCli, cfg.FeaturedCacheTTL)
		cachePinger = redisCli
	}

	// 3) object storage (optional; products without images still work)
	var imageStore catalog.ImageStore
	if cfg.S3AccessKey != "" {
		store, err := deps.NewImageStore(context.Background(), s3store.Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.S3Bucket,
			UsePathStyle: cfg.S3UsePathStyle,
			CDNBaseURL:   cfg.CDNBaseURL,
		})
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		imageStore = store
	} else {
		logger.Logger.Warn().Msg("object storage not configured; product images disabled")
	}

	// 4) publisher (optional; checkout logs and continues without it)
	var publisher checkout.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.Env != "dev" {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		}
		publisher = pub
		if c, ok := pub.(interface{ Close() error }); ok {
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	} else {
		publisher = memory.NewNoopPublisher()
	}

	// 5) security
	hasher := security.NewBcryptHasher(10)
	issuer := security.NewJWTIssuer(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		"storefront",
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	// 6) services
	authSvc := auth.NewService(userRepo, hasher, issuer, registry, auth.Config{
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	catalogSvc := catalog.New(productRepo, productCache, imageStore)
	cartSvc := cart.New(cartRepo, productRepo)
	couponSvc := coupon.New(couponRepo)
	checkoutSvc := checkout.NewService(
		deps.NewPaymentProvider(cfg.StripeSecretKey),
		productRepo,
		orderRepo,
		couponSvc,
		cartRepo,
		publisher,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
	)
	analyticsSvc := analytics.New(userRepo, productRepo, orderRepo)

	// 7) handlers + middleware
	secureCookies := cfg.SecureCookies()

	authH := handlers.NewAuthHandler(authSvc, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, secureCookies)
	healthH := handlers.NewHealthHandler(db, cachePinger)
	productsH := handlers.NewProductsHandler(catalogSvc)
	cartH := handlers.NewCartHandler(cartSvc)
	couponsH := handlers.NewCouponsHandler(couponSvc)
	checkoutH := handlers.NewCheckoutHandler(checkoutSvc)
	analyticsH := handlers.NewAnalyticsHandler(analyticsSvc)

	authMW := middleware.Auth(issuer, authSvc, response.WriteError)
	adminMW := middleware.AdminOnly(response.WriteError)

	// 8) router + server
	mux := router.New(router.Deps{
		Health:    healthH,
		Auth:      authH,
		Products:  productsH,
		Cart:      cartH,
		Coupons:   couponsH,
		Checkout:  checkoutH,
		Analytics: analyticsH,
		AuthMW:    authMW,
		AdminMW:   adminMW,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

// runCleanup runs cleanup functions in reverse registration order.
func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
