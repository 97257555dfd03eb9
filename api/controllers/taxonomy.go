package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/internal/categories"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

// TaxonomyClient is the slice of the CMS client the facet endpoints need.
type TaxonomyClient interface {
	Categories(ctx context.Context, query url.Values) (*cms.CategoryList, error)
	Brands(ctx context.Context, query url.Values) (*cms.BrandList, error)
	Places(ctx context.Context, query url.Values) (*cms.PlaceList, error)
}

func cacheControl(w http.ResponseWriter, cfg config.CMSConfig) {
	if cfg.CacheTTL > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cfg.CacheTTL.Seconds())))
	}
}

// CategoryTree serves the category forest as nested nodes, ready for
// cascade-aware rendering.
func CategoryTree(client TaxonomyClient, cfg config.CMSConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := client.Categories(ctx, nil)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		tree := categories.NewTree(list.Data)
		cacheControl(w, cfg)
		responses.WriteSuccess(w, tree.Roots())
	}
}

// BrandList proxies the brand facet values.
func BrandList(client TaxonomyClient, cfg config.CMSConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := client.Brands(ctx, nil)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cacheControl(w, cfg)
		responses.WriteSuccess(w, list.Data)
	}
}

// PlaceList proxies the usage-location facet values.
func PlaceList(client TaxonomyClient, cfg config.CMSConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := client.Places(ctx, nil)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cacheControl(w, cfg)
		responses.WriteSuccess(w, list.Data)
	}
}
