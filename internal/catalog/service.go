package catalog

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vitrinalabs/storefront-backend/internal/filters"
	"github.com/vitrinalabs/storefront-backend/internal/pagination"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/metrics"
)

// ErrSuperseded marks a response that completed after a newer query was
// issued; callers drop it instead of overwriting fresher results.
var ErrSuperseded = pkgerrors.New(pkgerrors.CodeConflict, "catalog response superseded by a newer query")

type productFetcher interface {
	Products(ctx context.Context, query url.Values) (*cms.ProductList, error)
}

// Result is one page of catalog data with its paging metadata.
type Result struct {
	Products []cms.Product
	Meta     pagination.Meta
}

// Service executes catalog queries against the CMS. Each request carries a
// monotonically increasing sequence number; completions that are no longer
// the latest issued request are discarded, so overlapping fetches cannot
// race a stale page onto the screen.
type Service struct {
	client  productFetcher
	metrics *metrics.CatalogMetrics

	issued    atomic.Uint64
	completed atomic.Uint64
}

// NewService builds the catalog query service.
func NewService(client productFetcher, catalogMetrics *metrics.CatalogMetrics) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cms client required")
	}
	return &Service{client: client, metrics: catalogMetrics}, nil
}

// Search runs the query described by the criteria and returns the page of
// results. When a newer Search was issued before this one completed, the
// response is dropped and ErrSuperseded is returned.
func (s *Service) Search(ctx context.Context, criteria filters.Criteria) (*Result, error) {
	seq := s.issued.Add(1)

	start := time.Now()
	list, err := s.client.Products(ctx, BuildQuery(criteria))
	s.metrics.ObserveFetch("products", time.Since(start))
	if err != nil {
		s.metrics.IncFetchFailure("products")
		return nil, err
	}

	if !s.markCompleted(seq) {
		s.metrics.IncStaleDropped()
		return nil, ErrSuperseded
	}

	return &Result{
		Products: list.Data,
		Meta: pagination.Meta{
			Page:      list.Meta.Pagination.Page,
			PageSize:  list.Meta.Pagination.PageSize,
			PageCount: list.Meta.Pagination.PageCount,
			Total:     list.Meta.Pagination.Total,
		},
	}, nil
}

// markCompleted advances the completion watermark to seq and reports whether
// seq is still the latest issued request.
func (s *Service) markCompleted(seq uint64) bool {
	for {
		current := s.completed.Load()
		if seq <= current {
			return false
		}
		if s.completed.CompareAndSwap(current, seq) {
			return seq == s.issued.Load()
		}
	}
}
