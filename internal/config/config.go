package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Auth / Security
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	// Infrastructure
	DBAddr   string
	DBDebug  bool
	RedisURL string

	// Messaging (optional in dev; bootstrap falls back to a noop publisher)
	RabbitURL      string
	RabbitExchange string

	// Object storage for product images
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UsePathStyle bool
	CDNBaseURL     string

	// Payments
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// Catalog cache
	FeaturedCacheTTL time.Duration
}

func Load() (*Config, error) {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// Two distinct signing secrets: access tokens and refresh tokens must not
	// be interchangeable.
	cfg.AccessTokenSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("missing required env var: ACCESS_TOKEN_SECRET")
	}
	cfg.RefreshTokenSecret = os.Getenv("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("missing required env var: REFRESH_TOKEN_SECRET")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	ttl, err := getDuration("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	rtl, err := getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTokenTTL = rtl

	// Infrastructure dependencies.
	// The storefront cannot operate without its database and cache; fail fast
	// instead of starting in a partially-initialized state.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}
	cfg.DBDebug = getEnv("DB_DEBUG", "") == "true"

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("missing required env var: REDIS_URL")
	}

	cfg.RabbitURL = os.Getenv("RABBIT_URL")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "storefront.orders")

	// Object storage (MinIO/R2/S3 compatible).
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3Bucket = getEnv("S3_BUCKET", "product-images")
	cfg.S3UsePathStyle = getEnv("S3_USE_PATH_STYLE", "true") == "true"
	cfg.CDNBaseURL = os.Getenv("CDN_BASE_URL")

	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.CheckoutSuccessURL = getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/purchase-success?session_id={CHECKOUT_SESSION_ID}")
	cfg.CheckoutCancelURL = getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/purchase-cancel")

	fct, err := getDuration("FEATURED_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.FeaturedCacheTTL = fct

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

// SecureCookies reports whether auth cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool { return c.Env == "prod" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
