// Package services hosts the mocked catalog endpoint the storefront
// fetches from, seeded with a fixed product set so the demo runs
// self-contained.
package services

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/models"
)

func rating(v float64) *float64 { return &v }

// SeedProducts is the demo catalog: all five categories, a couple of
// out-of-stock entries, and two unrated products to exercise the rating
// filter and sort policies.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p-1001",
			Name:        "Wireless Headphones",
			Description: "Over-ear Bluetooth headphones with active noise cancellation and 30-hour battery life.",
			Price:       7999,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/headphones/400/400",
			Stock:       24,
			Rating:      rating(4.5),
		},
		{
			ID:          "p-1002",
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless mechanical keyboard with hot-swappable switches and PBT keycaps.",
			Price:       12999,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/keyboard/400/400",
			Stock:       11,
			Rating:      rating(4.8),
		},
		{
			ID:          "p-1003",
			Name:        "USB-C Hub",
			Description: "7-in-1 hub with HDMI, card reader, and 100W passthrough charging.",
			Price:       3499,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/hub/400/400",
			Stock:       0,
			Rating:      rating(3.9),
		},
		{
			ID:          "p-2001",
			Name:        "Merino Wool Sweater",
			Description: "Midweight crewneck sweater in ethically sourced merino wool.",
			Price:       8900,
			Category:    models.CategoryClothing,
			Image:       "https://picsum.photos/seed/sweater/400/400",
			Stock:       37,
			Rating:      rating(4.2),
		},
		{
			ID:          "p-2002",
			Name:        "Canvas Sneakers",
			Description: "Low-top canvas sneakers with a vulcanized rubber sole.",
			Price:       4500,
			Category:    models.CategoryClothing,
			Image:       "https://picsum.photos/seed/sneakers/400/400",
			Stock:       52,
		},
		{
			ID:          "p-3001",
			Name:        "The Pragmatic Programmer",
			Description: "20th anniversary edition of the classic guide to software craftsmanship.",
			Price:       3999,
			Category:    models.CategoryBooks,
			Image:       "https://picsum.photos/seed/pragprog/400/400",
			Stock:       18,
			Rating:      rating(4.7),
		},
		{
			ID:          "p-3002",
			Name:        "Designing Data-Intensive Applications",
			Description: "The big ideas behind reliable, scalable, and maintainable systems.",
			Price:       4599,
			Category:    models.CategoryBooks,
			Image:       "https://picsum.photos/seed/ddia/400/400",
			Stock:       9,
			Rating:      rating(4.9),
		},
		{
			ID:          "p-4001",
			Name:        "Cast Iron Skillet",
			Description: "Pre-seasoned 12-inch cast iron skillet, oven safe to 260C.",
			Price:       2999,
			Category:    models.CategoryHome,
			Image:       "https://picsum.photos/seed/skillet/400/400",
			Stock:       44,
			Rating:      rating(4.6),
		},
		{
			ID:          "p-4002",
			Name:        "Ceramic Pour-Over Set",
			Description: "Dripper, carafe, and reusable filter for slow-brewed coffee.",
			Price:       5499,
			Category:    models.CategoryHome,
			Image:       "https://picsum.photos/seed/pourover/400/400",
			Stock:       0,
			Rating:      rating(4.1),
		},
		{
			ID:          "p-5001",
			Name:        "Yoga Mat",
			Description: "6mm non-slip mat with alignment markings and carry strap.",
			Price:       2499,
			Category:    models.CategorySports,
			Image:       "https://picsum.photos/seed/yogamat/400/400",
			Stock:       63,
			Rating:      rating(4.3),
		},
		{
			ID:          "p-5002",
			Name:        "Adjustable Dumbbell Pair",
			Description: "2.5 to 25kg per hand with quick-change dial plates.",
			Price:       29999,
			Category:    models.CategorySports,
			Image:       "https://picsum.photos/seed/dumbbell/400/400",
			Stock:       6,
		},
		{
			ID:          "p-5003",
			Name:        "Trail Running Shoes",
			Description: "Aggressive lug pattern and rock plate for technical terrain.",
			Price:       11900,
			Category:    models.CategorySports,
			Image:       "https://picsum.photos/seed/trailshoes/400/400",
			Stock:       21,
			Rating:      rating(4.4),
		},
	}
}

// MockCatalogHandler serves the seeded products as the JSON array the
// catalog store fetches. Stands in for a real product API.
func MockCatalogHandler() gin.HandlerFunc {
	products := SeedProducts()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, products)
	}
}
