package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Backend  BackendConfig
	PayHere  PayHereConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Checkout.Rate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAMPMART_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMPMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAMPMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMPMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"CAMPMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CAMPMART_REDIS_ADDR"`
	Password     string        `envconfig:"CAMPMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMPMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMPMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMPMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMPMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMPMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMPMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// BackendConfig points at the marketplace booking backend.
type BackendConfig struct {
	BaseURL  string        `envconfig:"CAMPMART_BACKEND_BASE_URL" required:"true"`
	APIToken string        `envconfig:"CAMPMART_BACKEND_API_TOKEN"`
	Timeout  time.Duration `envconfig:"CAMPMART_BACKEND_TIMEOUT" default:"10s"`
}

// PayHereConfig holds the gateway credentials and redirect endpoints.
// The merchant id and secret are environment-bound, never derived.
type PayHereConfig struct {
	MerchantID     string `envconfig:"CAMPMART_PAYHERE_MERCHANT_ID" required:"true"`
	MerchantSecret string `envconfig:"CAMPMART_PAYHERE_MERCHANT_SECRET" required:"true"`
	Sandbox        bool   `envconfig:"CAMPMART_PAYHERE_SANDBOX" default:"true"`
	Currency       string `envconfig:"CAMPMART_PAYHERE_CURRENCY" default:"LKR"`
	CheckoutURL    string `envconfig:"CAMPMART_PAYHERE_CHECKOUT_URL"`
	ReturnURL      string `envconfig:"CAMPMART_PAYHERE_RETURN_URL" required:"true"`
	CancelURL      string `envconfig:"CAMPMART_PAYHERE_CANCEL_URL" required:"true"`
	NotifyURL      string `envconfig:"CAMPMART_PAYHERE_NOTIFY_URL" required:"true"`
}

type CheckoutConfig struct {
	AdvanceRate string        `envconfig:"CAMPMART_CHECKOUT_ADVANCE_RATE" default:"0.5"`
	OrderPrefix string        `envconfig:"CAMPMART_CHECKOUT_ORDER_PREFIX" default:"CM"`
	HandleTTL   time.Duration `envconfig:"CAMPMART_CHECKOUT_HANDLE_TTL" default:"24h"`
	LockTTL     time.Duration `envconfig:"CAMPMART_CHECKOUT_LOCK_TTL" default:"10m"`
	CartTTL     time.Duration `envconfig:"CAMPMART_CHECKOUT_CART_TTL" default:"72h"`
}

// Rate parses the advance rate into a decimal fraction of the total.
func (c CheckoutConfig) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.AdvanceRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing advance rate %q: %w", c.AdvanceRate, err)
	}
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("advance rate %q must be in (0, 1]", c.AdvanceRate)
	}
	return rate, nil
}
