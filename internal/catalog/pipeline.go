package catalog

import (
	"sort"
	"strings"

	"storefront-api/internal/models"
)

// Filter returns the products matching every active criterion. The input
// slice is never mutated.
func Filter(products []models.Product, f models.ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Product, f models.ProductFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != models.CategoryAll {
		if string(p.Category) != f.Category {
			return false
		}
	}
	if f.PriceRange != nil {
		if p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max {
			return false
		}
	}
	if f.MinRating != nil {
		// An unrated product fails any active rating threshold.
		if p.Rating == nil || *p.Rating < *f.MinRating {
			return false
		}
	}
	if f.InStock && p.Stock <= 0 {
		return false
	}
	return true
}

// Sort returns a freshly ordered copy. The sort is stable: ties keep their
// prior relative order. Unknown keys fall back to the default ordering.
func Sort(products []models.Product, key models.ProductSort) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch key {
	case models.SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case models.SortRatingDesc:
		// Missing ratings order as zero, i.e. last.
		sort.SliceStable(out, func(i, j int) bool { return ratingOf(out[i]) > ratingOf(out[j]) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

func ratingOf(p models.Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
