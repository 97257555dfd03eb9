package cms

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
)

// Client is a thin request/response proxy in front of the headless CMS. It
// owns authentication and transport concerns only; query construction belongs
// to the caller.
type Client struct {
	http    *resty.Client
	apiPath string
}

// New builds a CMS client from configuration.
func New(cfg config.CMSConfig) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetHeader("Content-Type", "application/json")
	if cfg.AuthToken != "" {
		http.SetAuthToken(cfg.AuthToken)
	}
	return &Client{
		http:    http,
		apiPath: strings.TrimRight(cfg.APIPath, "/"),
	}
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	req := c.http.NewRequest().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if result != nil {
		req.SetResult(result)
	}

	res, err := req.Get(c.apiPath + endpoint)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cms request failed")
	}
	if res.StatusCode() == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cms resource not found").
			WithDetails(map[string]any{"endpoint": endpoint})
	}
	if res.IsError() {
		return pkgerrors.New(pkgerrors.CodeDependency, "cms returned "+res.Status()).
			WithDetails(map[string]any{"endpoint": endpoint, "status": res.StatusCode()})
	}
	return nil
}

// Products runs a catalog query and returns the paginated product envelope.
func (c *Client) Products(ctx context.Context, query url.Values) (*ProductList, error) {
	out := &ProductList{}
	if err := c.get(ctx, "/products", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product by id with its relations populated.
func (c *Client) Product(ctx context.Context, id string, query url.Values) (*ProductDetail, error) {
	out := &ProductDetail{}
	if err := c.get(ctx, "/products/"+url.PathEscape(id), query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns the full category forest.
func (c *Client) Categories(ctx context.Context, query url.Values) (*CategoryList, error) {
	out := &CategoryList{}
	if err := c.get(ctx, "/categories", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Brands returns the brand facet values.
func (c *Client) Brands(ctx context.Context, query url.Values) (*BrandList, error) {
	out := &BrandList{}
	if err := c.get(ctx, "/brands", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Places returns the usage-location facet values.
func (c *Client) Places(ctx context.Context, query url.Values) (*PlaceList, error) {
	out := &PlaceList{}
	if err := c.get(ctx, "/places", query, out); err != nil {
		return nil, err
	}
	return out, nil
}
