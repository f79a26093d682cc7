// Package cart implements the shopping cart as a reducer-style state
// machine: a pure Reduce function over an immutable Model, wrapped by a
// Store that persists after every transition and notifies subscribers.
package cart

import (
	"storefront-api/internal/models"
	"storefront-api/pkg/utils"
)

// Model is the cart aggregate: an ordered item list with one entry per
// distinct product id. Reduce never mutates a Model in place; treat values
// as immutable. Derived figures are recomputed on every read.
type Model struct {
	Items []models.CartItem
}

// ItemCount is the sum of all quantities.
func (m Model) ItemCount() int {
	n := 0
	for _, it := range m.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal sums the per-item subtotals in minor units.
func (m Model) Subtotal() int64 {
	var sum int64
	for _, it := range m.Items {
		sum += it.Subtotal
	}
	return sum
}

// Tax is 10% of the subtotal, rounded half away from zero.
func (m Model) Tax() int64 {
	return utils.Tax(m.Subtotal())
}

// Total is subtotal plus tax.
func (m Model) Total() int64 {
	return utils.Total(m.Subtotal())
}

func (m Model) IsEmpty() bool {
	return len(m.Items) == 0
}

// ItemByProductID returns the item holding the given product snapshot.
func (m Model) ItemByProductID(productID string) (models.CartItem, bool) {
	for _, it := range m.Items {
		if it.Product.ID == productID {
			return it, true
		}
	}
	return models.CartItem{}, false
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
