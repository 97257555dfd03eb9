package pricebounds

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

type fakeFetcher struct {
	byDirection map[string]*cms.ProductList
	err         error
	calls       int
}

func (f *fakeFetcher) Products(ctx context.Context, query url.Values) (*cms.ProductList, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byDirection[query.Get("sort[0]")], nil
}

func testConfig() config.CatalogConfig {
	return config.CatalogConfig{
		PriceMargin:      10000,
		PriceFallbackMin: 0,
		PriceFallbackMax: 1_500_000,
		BoundsCacheTTL:   time.Minute,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func listWithPrice(price float64) *cms.ProductList {
	return &cms.ProductList{Data: []cms.Product{{ID: 1, Price: price}}}
}

func TestResolveWidensExtremesByMargin(t *testing.T) {
	fetcher := &fakeFetcher{byDirection: map[string]*cms.ProductList{
		"price:asc":  listWithPrice(45000),
		"price:desc": listWithPrice(820000),
	}}
	resolver, err := NewResolver(fetcher, testLogger(), testConfig())
	require.NoError(t, err)

	bounds := resolver.Resolve(context.Background())
	assert.Equal(t, Bounds{Min: 35000, Max: 830000}, bounds)
}

func TestResolveClampsMinAtZero(t *testing.T) {
	fetcher := &fakeFetcher{byDirection: map[string]*cms.ProductList{
		"price:asc":  listWithPrice(2500),
		"price:desc": listWithPrice(90000),
	}}
	resolver, err := NewResolver(fetcher, testLogger(), testConfig())
	require.NoError(t, err)

	bounds := resolver.Resolve(context.Background())
	assert.Zero(t, bounds.Min)
	assert.Equal(t, 100000.0, bounds.Max)
}

func TestResolveFallsBackOnFetchError(t *testing.T) {
	resolver, err := NewResolver(&fakeFetcher{err: errors.New("cms down")}, testLogger(), testConfig())
	require.NoError(t, err)

	bounds := resolver.Resolve(context.Background())
	assert.Equal(t, resolver.Fallback(), bounds)
}

func TestResolveFallsBackOnEmptyCatalog(t *testing.T) {
	fetcher := &fakeFetcher{byDirection: map[string]*cms.ProductList{
		"price:asc":  {},
		"price:desc": {},
	}}
	resolver, err := NewResolver(fetcher, testLogger(), testConfig())
	require.NoError(t, err)

	bounds := resolver.Resolve(context.Background())
	assert.Equal(t, Bounds{Min: 0, Max: 1_500_000}, bounds)
}

func TestResolveCachesSuccessfulLookups(t *testing.T) {
	fetcher := &fakeFetcher{byDirection: map[string]*cms.ProductList{
		"price:asc":  listWithPrice(45000),
		"price:desc": listWithPrice(820000),
	}}
	resolver, err := NewResolver(fetcher, testLogger(), testConfig())
	require.NoError(t, err)

	first := resolver.Resolve(context.Background())
	second := resolver.Resolve(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 2, fetcher.calls, "cached resolution must not refetch")
}

func TestResolveDoesNotCacheFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("cms down")}
	resolver, err := NewResolver(fetcher, testLogger(), testConfig())
	require.NoError(t, err)

	resolver.Resolve(context.Background())
	resolver.Resolve(context.Background())
	assert.Equal(t, 4, fetcher.calls, "failed resolutions must retry on the next call")
}

func TestNewResolverRequiresDependencies(t *testing.T) {
	_, err := NewResolver(nil, testLogger(), testConfig())
	require.Error(t, err)

	_, err = NewResolver(&fakeFetcher{}, nil, testConfig())
	require.Error(t, err)
}
