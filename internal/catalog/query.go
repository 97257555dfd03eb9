package catalog

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/vitrinalabs/storefront-backend/internal/filters"
)

// BuildQuery translates filter criteria into CMS query parameters. Pure and
// deterministic: empty facets are omitted entirely rather than sent as empty
// clauses, and price bounds are only emitted when they were explicitly
// chosen, so defaults never over-constrain the remote query.
func BuildQuery(c filters.Criteria) url.Values {
	params := url.Values{}

	populateRelations(params)

	if c.SearchTerm != "" {
		params.Set("filters[$or][0][name][$containsi]", c.SearchTerm)
		params.Set("filters[$or][0][description][$containsi]", c.SearchTerm)
	}

	setIDClause(params, "category", c.Categories)
	setIDClause(params, "brand", c.Brands)
	setIDClause(params, "places", c.Places)

	if c.PriceSet {
		params.Set("filters[price][$gte]", formatPrice(c.PriceLow))
		params.Set("filters[price][$lte]", formatPrice(c.PriceHigh))
	}

	params.Set("sort[0]", sortClause(c.Sort))
	params.Set("pagination[page]", strconv.Itoa(c.Page))
	params.Set("pagination[pageSize]", strconv.Itoa(c.PageSize))

	return params
}

// BoundsQuery builds the minimal single-row query the price bound resolver
// issues; ascending=true discovers the minimum price.
func BoundsQuery(ascending bool) url.Values {
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	params := url.Values{}
	params.Set("sort[0]", "price:"+direction)
	params.Set("fields[0]", "price")
	params.Set("pagination[limit]", "1")
	return params
}

// DetailQuery populates the relations needed by the product detail surface.
func DetailQuery() url.Values {
	params := url.Values{}
	populateRelations(params)
	return params
}

func populateRelations(params url.Values) {
	params.Set("populate[category][fields][0]", "name")
	params.Set("populate[category][fields][1]", "description")
	params.Set("populate[brand][fields][0]", "name")
	params.Set("populate[brand][populate][logo][fields][0]", "formats")
	params.Set("populate[places][fields][0]", "name")
	params.Set("populate[places][populate][icon][fields][0]", "formats")
	params.Set("populate[images][fields][0]", "formats")
	params.Set("populate[images][fields][1]", "alternativeText")
}

func setIDClause(params url.Values, relation string, set filters.IDSet) {
	if set.Empty() {
		return
	}
	for i, id := range set.Values() {
		key := fmt.Sprintf("filters[%s][id][$in][%d]", relation, i)
		params.Set(key, strconv.Itoa(id))
	}
}

func sortClause(key filters.SortKey) string {
	switch key {
	case filters.SortOldest:
		return "createdAt:asc"
	case filters.SortPriceLow:
		return "price:asc"
	case filters.SortPriceHigh:
		return "price:desc"
	default:
		return "createdAt:desc"
	}
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
