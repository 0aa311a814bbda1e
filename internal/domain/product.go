package domain

import "time"

// Product is a catalog entry that descriptions are written for.
type Product struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	SKU                string     `json:"sku"`
	Category           string     `json:"category"`
	Price              float64    `json:"price"`
	Image              string     `json:"image,omitempty"`
	CurrentDescription string     `json:"current_description"`
	LastGenerated      *time.Time `json:"last_generated,omitempty"`
}

// ProductSort enumerates catalog orderings.
type ProductSort string

const (
	SortByName      ProductSort = "name"
	SortByNameDesc  ProductSort = "name-desc"
	SortByPrice     ProductSort = "price"
	SortByPriceDesc ProductSort = "price-desc"
)

// AllCategories is the pseudo-category that disables category filtering.
const AllCategories = "All"
