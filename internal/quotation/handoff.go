package quotation

import (
	"net/url"
	"strconv"

	"github.com/vitrinalabs/storefront-backend/internal/filters"
)

// Handoff translates a completed quotation into the catalog's query
// parameter contract: the chosen place and categories, newest-first sorting
// and the first page.
func (d *Draft) Handoff() url.Values {
	params := url.Values{}
	if d.SelectedPlace > 0 {
		params.Set(filters.ParamPlaces, strconv.Itoa(d.SelectedPlace))
	}
	if len(d.SelectedCategories) > 0 {
		params.Set(filters.ParamCategories, filters.NewIDSet(d.SelectedCategories...).String())
	}
	params.Set(filters.ParamSortBy, string(filters.SortNewest))
	params.Set(filters.ParamPage, "1")
	return params
}

// FilterPartial expresses the same handoff as a filter-store merge, so the
// destination view matches the URL immediately instead of waiting for a
// hydration pass.
func (d *Draft) FilterPartial() filters.Partial {
	sort := filters.SortNewest
	page := 1
	partial := filters.Partial{
		Sort: &sort,
		Page: &page,
	}
	if d.SelectedPlace > 0 {
		partial.Places = filters.NewIDSet(d.SelectedPlace)
	}
	if len(d.SelectedCategories) > 0 {
		partial.Categories = filters.NewIDSet(d.SelectedCategories...)
	}
	return partial
}
