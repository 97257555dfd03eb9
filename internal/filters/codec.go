package filters

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"
)

// URL parameter names shared with the CMS proxy and the quotation handoff.
const (
	ParamSearch     = "search"
	ParamBrands     = "brands"
	ParamCategories = "categories"
	ParamPlaces     = "places"
	ParamPriceMin   = "priceMin"
	ParamPriceMax   = "priceMax"
	ParamSortBy     = "sortBy"
	ParamPage       = "page"
	ParamPageSize   = "pageSize"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// scalarForm captures the non-list query parameters; id lists are decoded by
// hand since they travel as comma-joined values.
type scalarForm struct {
	Search   string   `schema:"search"`
	PriceMin *float64 `schema:"priceMin"`
	PriceMax *float64 `schema:"priceMax"`
	SortBy   string   `schema:"sortBy"`
	Page     int      `schema:"page"`
	PageSize int      `schema:"pageSize"`
}

// Decode derives criteria from a URL query string. Absent parameters keep
// their defaults, so an empty query decodes to Default().
func Decode(query url.Values) (Criteria, error) {
	c := Default()

	var form scalarForm
	if err := decoder.Decode(&form, query); err != nil {
		return c, err
	}

	c.SearchTerm = form.Search
	c.Sort = ParseSortKey(form.SortBy)
	if form.Page >= 1 {
		c.Page = form.Page
	}
	if form.PageSize >= 1 {
		c.PageSize = form.PageSize
	}
	if form.PriceMin != nil {
		c.PriceLow = *form.PriceMin
		c.PriceSet = true
	}
	if form.PriceMax != nil {
		c.PriceHigh = *form.PriceMax
		c.PriceSet = true
	}
	if c.PriceLow > c.PriceHigh {
		c.PriceLow, c.PriceHigh = c.PriceHigh, c.PriceLow
	}

	c.Brands = ParseIDSet(query.Get(ParamBrands))
	c.Categories = ParseIDSet(query.Get(ParamCategories))
	c.Places = ParseIDSet(query.Get(ParamPlaces))

	return c, nil
}

// Encode renders criteria as a minimal query string: every field still at its
// default is omitted so shareable URLs stay short, and decoding the result
// restores the same criteria.
func Encode(c Criteria) url.Values {
	params := url.Values{}
	if c.SearchTerm != "" {
		params.Set(ParamSearch, c.SearchTerm)
	}
	if !c.Brands.Empty() {
		params.Set(ParamBrands, c.Brands.String())
	}
	if !c.Categories.Empty() {
		params.Set(ParamCategories, c.Categories.String())
	}
	if !c.Places.Empty() {
		params.Set(ParamPlaces, c.Places.String())
	}
	if c.PriceSet && c.PriceLow != c.ServerMin {
		params.Set(ParamPriceMin, formatPrice(c.PriceLow))
	}
	if c.PriceSet && c.PriceHigh != c.ServerMax {
		params.Set(ParamPriceMax, formatPrice(c.PriceHigh))
	}
	if c.Sort != SortNewest {
		params.Set(ParamSortBy, string(c.Sort))
	}
	if c.Page != DefaultPage {
		params.Set(ParamPage, strconv.Itoa(c.Page))
	}
	if c.PageSize != DefaultPageSize {
		params.Set(ParamPageSize, strconv.Itoa(c.PageSize))
	}
	return params
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
