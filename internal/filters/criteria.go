package filters

// SortKey orders catalog results.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// ParseSortKey maps a raw value onto a known sort key, defaulting to newest.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortOldest, SortPriceLow, SortPriceHigh:
		return SortKey(raw)
	default:
		return SortNewest
	}
}

const (
	DefaultPage     = 1
	DefaultPageSize = 12

	// Working price domain until the real catalog bounds are discovered.
	FallbackPriceMin = 0
	FallbackPriceMax = 1_500_000
)

// DescendantIndex answers subtree expansion for category cascade toggles.
type DescendantIndex interface {
	DescendantsOf(id int) []int
}

// Criteria is the canonical, serializable filter state for the catalog.
// PriceSet records whether the price bounds were chosen explicitly (by the
// user or a deep link) as opposed to defaulted from the working domain; the
// query builder and the bound resolver both depend on that distinction.
type Criteria struct {
	SearchTerm string
	Brands     IDSet
	Categories IDSet
	Places     IDSet
	PriceLow   float64
	PriceHigh  float64
	PriceSet   bool
	Sort       SortKey
	Page       int
	PageSize   int
	ServerMin  float64
	ServerMax  float64
}

// Default returns the criteria a fresh catalog visit starts from.
func Default() Criteria {
	return Criteria{
		Brands:     IDSet{},
		Categories: IDSet{},
		Places:     IDSet{},
		PriceLow:   FallbackPriceMin,
		PriceHigh:  FallbackPriceMax,
		Sort:       SortNewest,
		Page:       DefaultPage,
		PageSize:   DefaultPageSize,
		ServerMin:  FallbackPriceMin,
		ServerMax:  FallbackPriceMax,
	}
}

func (c Criteria) clone() Criteria {
	c.Brands = c.Brands.Clone()
	c.Categories = c.Categories.Clone()
	c.Places = c.Places.Clone()
	return c
}

func (c Criteria) resetPage() Criteria {
	c.Page = DefaultPage
	return c
}

// WithSearchTerm replaces the free-text filter.
func (c Criteria) WithSearchTerm(term string) Criteria {
	out := c.clone()
	out.SearchTerm = term
	return out.resetPage()
}

// WithSort replaces the sort key; unknown keys fall back to newest.
func (c Criteria) WithSort(key SortKey) Criteria {
	out := c.clone()
	out.Sort = ParseSortKey(string(key))
	return out.resetPage()
}

// WithBrandToggled adds or removes a brand id.
func (c Criteria) WithBrandToggled(id int, included bool) Criteria {
	out := c.clone()
	if included {
		out.Brands = out.Brands.With(id)
	} else {
		out.Brands = out.Brands.Without(id)
	}
	return out.resetPage()
}

// WithPlaceToggled adds or removes a place id.
func (c Criteria) WithPlaceToggled(id int, included bool) Criteria {
	out := c.clone()
	if included {
		out.Places = out.Places.With(id)
	} else {
		out.Places = out.Places.Without(id)
	}
	return out.resetPage()
}

// WithCategoryToggled cascades downward through the category tree: including
// a node also includes its whole subtree, and excluding a node removes the
// subtree even when a descendant was selected on its own. Toggling a child
// never touches its ancestors.
func (c Criteria) WithCategoryToggled(id int, included bool, tree DescendantIndex) Criteria {
	out := c.clone()
	subtree := []int{id}
	if tree != nil {
		subtree = append(subtree, tree.DescendantsOf(id)...)
	}
	if included {
		out.Categories = out.Categories.With(subtree...)
	} else {
		out.Categories = out.Categories.Without(subtree...)
	}
	return out.resetPage()
}

// WithPriceRange sets an explicit price selection. Inverted inputs are
// swapped and both ends are clamped into the known server domain; invalid
// input is corrected, never rejected.
func (c Criteria) WithPriceRange(low, high float64) Criteria {
	out := c.clone()
	if low > high {
		low, high = high, low
	}
	out.PriceLow = clamp(low, out.ServerMin, out.ServerMax)
	out.PriceHigh = clamp(high, out.ServerMin, out.ServerMax)
	out.PriceSet = true
	return out.resetPage()
}

// WithServerBounds records the discovered catalog price domain. While no
// explicit price selection exists the current range follows the new domain;
// an explicit selection is only re-clamped, never replaced, so a late bound
// fetch cannot overwrite a user's choice. Part of hydration, so the page is
// preserved.
func (c Criteria) WithServerBounds(min, max float64) Criteria {
	out := c.clone()
	if min > max {
		min, max = max, min
	}
	out.ServerMin = min
	out.ServerMax = max
	if !out.PriceSet {
		out.PriceLow = min
		out.PriceHigh = max
	} else {
		out.PriceLow = clamp(out.PriceLow, min, max)
		out.PriceHigh = clamp(out.PriceHigh, min, max)
	}
	return out
}

// WithPage moves to the given 1-indexed page. Values below 1 clamp to 1;
// upper clamping happens against live pagination metadata in the pagination
// package.
func (c Criteria) WithPage(page int) Criteria {
	out := c.clone()
	if page < 1 {
		page = 1
	}
	out.Page = page
	return out
}

// WithPageSize replaces the page size and returns to the first page.
func (c Criteria) WithPageSize(size int) Criteria {
	out := c.clone()
	if size < 1 {
		size = DefaultPageSize
	}
	out.PageSize = size
	return out.resetPage()
}

// Cleared resets every field to its default except the discovered server
// bounds, which stay authoritative once known.
func (c Criteria) Cleared() Criteria {
	out := Default()
	out.ServerMin = c.ServerMin
	out.ServerMax = c.ServerMax
	out.PriceLow = c.ServerMin
	out.PriceHigh = c.ServerMax
	return out
}

// Partial is the bulk-merge payload used exactly once per session to hydrate
// from the URL or from an external flow's output.
type Partial struct {
	SearchTerm *string
	Brands     IDSet
	Categories IDSet
	Places     IDSet
	PriceLow   *float64
	PriceHigh  *float64
	Sort       *SortKey
	Page       *int
	PageSize   *int
}

// Initialized merges the partial into the criteria. Unlike the other
// reducers it never resets the page.
func (c Criteria) Initialized(p Partial) Criteria {
	out := c.clone()
	if p.SearchTerm != nil {
		out.SearchTerm = *p.SearchTerm
	}
	if p.Brands != nil {
		out.Brands = p.Brands.Clone()
	}
	if p.Categories != nil {
		out.Categories = p.Categories.Clone()
	}
	if p.Places != nil {
		out.Places = p.Places.Clone()
	}
	if p.PriceLow != nil {
		out.PriceLow = *p.PriceLow
		out.PriceSet = true
	}
	if p.PriceHigh != nil {
		out.PriceHigh = *p.PriceHigh
		out.PriceSet = true
	}
	if out.PriceLow > out.PriceHigh {
		out.PriceLow, out.PriceHigh = out.PriceHigh, out.PriceLow
	}
	if p.Sort != nil {
		out.Sort = ParseSortKey(string(*p.Sort))
	}
	if p.Page != nil && *p.Page >= 1 {
		out.Page = *p.Page
	}
	if p.PageSize != nil && *p.PageSize >= 1 {
		out.PageSize = *p.PageSize
	}
	return out
}

// Equal reports whether two criteria describe the same filter state.
func (c Criteria) Equal(other Criteria) bool {
	return c.SearchTerm == other.SearchTerm &&
		c.Brands.Equal(other.Brands) &&
		c.Categories.Equal(other.Categories) &&
		c.Places.Equal(other.Places) &&
		c.PriceLow == other.PriceLow &&
		c.PriceHigh == other.PriceHigh &&
		c.PriceSet == other.PriceSet &&
		c.Sort == other.Sort &&
		c.Page == other.Page &&
		c.PageSize == other.PageSize &&
		c.ServerMin == other.ServerMin &&
		c.ServerMax == other.ServerMax
}

// FiltersEqual reports whether the filter facets (everything except paging)
// match; the reconciler uses it to decide when a URL write must return to
// page one.
func (c Criteria) FiltersEqual(other Criteria) bool {
	return c.SearchTerm == other.SearchTerm &&
		c.Brands.Equal(other.Brands) &&
		c.Categories.Equal(other.Categories) &&
		c.Places.Equal(other.Places) &&
		c.PriceLow == other.PriceLow &&
		c.PriceHigh == other.PriceHigh &&
		c.Sort == other.Sort
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
