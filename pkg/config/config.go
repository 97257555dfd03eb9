package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	CMS       CMSConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Quotation QuotationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CMSConfig points the proxy layer at the headless CMS.
type CMSConfig struct {
	BaseURL   string        `envconfig:"STOREFRONT_CMS_BASE_URL" required:"true"`
	APIPath   string        `envconfig:"STOREFRONT_CMS_API_PATH" default:"/api"`
	AuthToken string        `envconfig:"STOREFRONT_CMS_AUTH_TOKEN"`
	Timeout   time.Duration `envconfig:"STOREFRONT_CMS_TIMEOUT" default:"10s"`
	Retries   int           `envconfig:"STOREFRONT_CMS_RETRIES" default:"2"`
	CacheTTL  time.Duration `envconfig:"STOREFRONT_CMS_CACHE_TTL" default:"1m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig tunes the filter and query engine.
type CatalogConfig struct {
	DefaultPageSize  int           `envconfig:"STOREFRONT_CATALOG_PAGE_SIZE" default:"12"`
	DebounceWindow   time.Duration `envconfig:"STOREFRONT_CATALOG_DEBOUNCE_WINDOW" default:"700ms"`
	PriceMargin      float64       `envconfig:"STOREFRONT_CATALOG_PRICE_MARGIN" default:"10000"`
	PriceFallbackMin float64       `envconfig:"STOREFRONT_CATALOG_PRICE_FALLBACK_MIN" default:"0"`
	PriceFallbackMax float64       `envconfig:"STOREFRONT_CATALOG_PRICE_FALLBACK_MAX" default:"1500000"`
	BoundsCacheTTL   time.Duration `envconfig:"STOREFRONT_CATALOG_BOUNDS_CACHE_TTL" default:"1m"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"STOREFRONT_CART_TTL" default:"720h"`
}

type QuotationConfig struct {
	DraftTTL time.Duration `envconfig:"STOREFRONT_QUOTATION_DRAFT_TTL" default:"168h"`
}
