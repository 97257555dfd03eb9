package cms

import "time"

// Pagination is the paging metadata block the CMS attaches to list responses.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Meta wraps the pagination block.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// ProductList is the envelope returned by the products collection endpoint.
type ProductList struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

// Product is the catalog entry as served by the CMS.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Reference   string    `json:"reference"`
	Stock       int       `json:"stock"`
	Brand       *Brand    `json:"brand,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Places      []Place   `json:"places,omitempty"`
	Images      []Media   `json:"images,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Brand is a product manufacturer facet value.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo *Media `json:"logo,omitempty"`
}

// Category is a catalog facet node; parents carry their children inline.
type Category struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description,omitempty"`
	IsParent        bool       `json:"isParent"`
	ChildCategories []Category `json:"child_categories,omitempty"`
}

// Place is a usage-location facet value.
type Place struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon *Media `json:"icon,omitempty"`
}

// Media is an uploaded asset with pre-rendered formats.
type Media struct {
	URL             string            `json:"url"`
	AlternativeText string            `json:"alternativeText,omitempty"`
	Formats         map[string]Format `json:"formats,omitempty"`
}

// Format is one rendition of a media asset.
type Format struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CategoryList is the envelope returned by the categories endpoint.
type CategoryList struct {
	Data []Category `json:"data"`
	Meta Meta       `json:"meta"`
}

// BrandList is the envelope returned by the brands endpoint.
type BrandList struct {
	Data []Brand `json:"data"`
	Meta Meta    `json:"meta"`
}

// PlaceList is the envelope returned by the places endpoint.
type PlaceList struct {
	Data []Place `json:"data"`
	Meta Meta    `json:"meta"`
}

// ProductDetail is the envelope returned by the single-product endpoint.
type ProductDetail struct {
	Data Product `json:"data"`
}
