package pricebounds

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/vitrinalabs/storefront-backend/internal/catalog"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

// Bounds is the discovered price domain for the catalog slider.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type productFetcher interface {
	Products(ctx context.Context, query url.Values) (*cms.ProductList, error)
}

// Resolver discovers the catalog's real price extremes with two single-row
// queries and widens them by a safety margin so boundary products are never
// excluded by the slider. Any failure degrades to the static fallback
// domain; the catalog stays usable either way.
type Resolver struct {
	client   productFetcher
	logg     *logger.Logger
	margin   float64
	fallback Bounds
	cacheTTL time.Duration

	mu       sync.Mutex
	cached   *Bounds
	cachedAt time.Time
}

// NewResolver builds a resolver from catalog configuration.
func NewResolver(client productFetcher, logg *logger.Logger, cfg config.CatalogConfig) (*Resolver, error) {
	if client == nil {
		return nil, errors.New("cms client is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Resolver{
		client:   client,
		logg:     logg,
		margin:   cfg.PriceMargin,
		fallback: Bounds{Min: cfg.PriceFallbackMin, Max: cfg.PriceFallbackMax},
		cacheTTL: cfg.BoundsCacheTTL,
	}, nil
}

// Fallback returns the static working domain used before or instead of a
// successful resolution.
func (r *Resolver) Fallback() Bounds {
	return r.fallback
}

// Resolve returns the widened price domain, serving a short-lived cache to
// keep the two discovery queries off the hot path.
func (r *Resolver) Resolve(ctx context.Context) Bounds {
	r.mu.Lock()
	if r.cached != nil && time.Since(r.cachedAt) < r.cacheTTL {
		cached := *r.cached
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	bounds, err := r.discover(ctx)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()),
			"price bound discovery failed, using fallback domain")
		return r.fallback
	}

	r.mu.Lock()
	r.cached = &bounds
	r.cachedAt = time.Now()
	r.mu.Unlock()
	return bounds
}

func (r *Resolver) discover(ctx context.Context) (Bounds, error) {
	minList, minErr := r.client.Products(ctx, catalog.BoundsQuery(true))
	maxList, maxErr := r.client.Products(ctx, catalog.BoundsQuery(false))
	if err := multierr.Combine(minErr, maxErr); err != nil {
		return Bounds{}, err
	}
	if len(minList.Data) == 0 || len(maxList.Data) == 0 {
		// Empty catalog: nothing to anchor the slider on.
		return r.fallback, nil
	}

	min := minList.Data[0].Price - r.margin
	if min < 0 {
		min = 0
	}
	max := maxList.Data[0].Price + r.margin
	return Bounds{Min: min, Max: max}, nil
}
