package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/internal/catalog"
	"github.com/vitrinalabs/storefront-backend/internal/filters"
	"github.com/vitrinalabs/storefront-backend/internal/pagination"
	"github.com/vitrinalabs/storefront-backend/internal/pricebounds"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

// CatalogSearcher is the slice of the catalog service the product list
// endpoint needs.
type CatalogSearcher interface {
	Search(ctx context.Context, criteria filters.Criteria) (*catalog.Result, error)
}

// ProductFetcher fetches a single product from the CMS.
type ProductFetcher interface {
	Product(ctx context.Context, id string, query url.Values) (*cms.ProductDetail, error)
}

type productListResponse struct {
	Products   []cms.Product   `json:"products"`
	Pagination pagination.Meta `json:"pagination"`
	Window     []int           `json:"window,omitempty"`
}

// ProductList translates the request's query parameters into catalog
// criteria and executes the search.
func ProductList(svc CatalogSearcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		criteria, err := filters.Decode(r.URL.Query())
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid filter parameters"))
			return
		}

		result, err := svc.Search(ctx, criteria)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{
			Products:   result.Products,
			Pagination: result.Meta,
			Window:     result.Meta.Window(),
		})
	}
}

// ProductDetail proxies a single product lookup.
func ProductDetail(client ProductFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		detail, err := client.Product(ctx, productID, catalog.DetailQuery())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail.Data)
	}
}

// PriceRange serves the widened price domain for the catalog slider.
func PriceRange(resolver *pricebounds.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, resolver.Resolve(r.Context()))
	}
}
