package models

// CartItem holds a snapshot of the product taken at add time plus a
// quantity. Later catalog changes never alter items already in the cart.
//
// Subtotal is persisted alongside quantity and must equal
// Product.Price * Quantity exactly; any drift is a validation failure,
// never a silent correction.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Subtotal int64   `json:"subtotal" validate:"gte=0"`
}

// NewCartItem builds an item with its subtotal derived from the snapshot.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		Product:  p,
		Quantity: quantity,
		Subtotal: p.Price * int64(quantity),
	}
}
