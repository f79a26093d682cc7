package models

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
)

// CategoryAll is a filter-only sentinel meaning "no category restriction".
// It is never a valid Product category.
const CategoryAll = "all"

// Product is one catalog entry. Price is in integer minor units (cents).
// Products are immutable once fetched; the cart keeps its own snapshots.
type Product struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    Category `json:"category" validate:"required,oneof=electronics clothing books home sports"`
	Image       string   `json:"image" validate:"required,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// PriceRange bounds a filter query, inclusive on both ends.
// Min must be strictly below Max; equal or inverted bounds are invalid.
type PriceRange struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"required,gt=0"`
}

// ProductFilter is a transient query object. A new filter replaces the old
// one wholesale; there are no partial-merge semantics.
type ProductFilter struct {
	Search     string      `json:"search,omitempty" validate:"omitempty,max=200"`
	Category   string      `json:"category,omitempty" validate:"omitempty,oneof=all electronics clothing books home sports"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	MinRating  *float64    `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	InStock    bool        `json:"in_stock,omitempty"`
}

// DefaultFilter matches every product.
func DefaultFilter() ProductFilter {
	return ProductFilter{Category: CategoryAll}
}

// ProductSort names one ordering of the catalog. Exactly one is active.
type ProductSort string

const (
	SortNameAsc    ProductSort = "name-asc"
	SortNameDesc   ProductSort = "name-desc"
	SortPriceAsc   ProductSort = "price-asc"
	SortPriceDesc  ProductSort = "price-desc"
	SortRatingDesc ProductSort = "rating-desc"
)

// DefaultSort is the ordering restored by resetFilter.
const DefaultSort = SortNameAsc

type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Issues  []FieldIssue `json:"issues,omitempty"`
}
