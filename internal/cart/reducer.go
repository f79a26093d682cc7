package cart

import "storefront-api/internal/models"

// Message is one named cart operation. Every state transition goes through
// exactly one Message, so each change is traceable by name.
type Message interface {
	Name() string
}

// AddProduct appends a new item with quantity 1, or increments the
// existing item's quantity if the product id is already present. The
// product is validated before admission; invalid products are rejected.
type AddProduct struct {
	Product models.Product
}

// RemoveItem deletes the matching item. A no-op if the id is absent.
type RemoveItem struct {
	ProductID string
}

// SetQuantity overwrites an item's quantity and subtotal. Quantity <= 0 is
// equivalent to RemoveItem; an unknown product id is a no-op.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// IncrementItem raises the item's quantity by one.
type IncrementItem struct {
	ProductID string
}

// DecrementItem lowers the item's quantity by one; at quantity 1 the item
// is removed rather than kept at 0.
type DecrementItem struct {
	ProductID string
}

// ClearCart empties the item list unconditionally.
type ClearCart struct{}

func (AddProduct) Name() string    { return "add_product" }
func (RemoveItem) Name() string    { return "remove_item" }
func (SetQuantity) Name() string   { return "set_quantity" }
func (IncrementItem) Name() string { return "increment_item" }
func (DecrementItem) Name() string { return "decrement_item" }
func (ClearCart) Name() string     { return "clear_cart" }

// Reduce is the pure transition function: equal inputs always yield equal
// resulting state, and the input model is never mutated. The only error
// path is AddProduct with a product failing validation; every other
// message is total.
func Reduce(m Model, msg Message) (Model, error) {
	switch msg := msg.(type) {
	case AddProduct:
		if verr := models.ValidateProduct(msg.Product); verr != nil {
			return m, verr
		}
		items := cloneItems(m.Items)
		for i, it := range items {
			if it.Product.ID == msg.Product.ID {
				// Keep the original snapshot; only the quantity moves.
				items[i] = models.NewCartItem(it.Product, it.Quantity+1)
				return Model{Items: items}, nil
			}
		}
		items = append(items, models.NewCartItem(msg.Product, 1))
		return Model{Items: items}, nil

	case RemoveItem:
		return removeItem(m, msg.ProductID), nil

	case SetQuantity:
		if msg.Quantity <= 0 {
			return removeItem(m, msg.ProductID), nil
		}
		for i, it := range m.Items {
			if it.Product.ID == msg.ProductID {
				items := cloneItems(m.Items)
				items[i] = models.NewCartItem(it.Product, msg.Quantity)
				return Model{Items: items}, nil
			}
		}
		return m, nil

	case IncrementItem:
		if it, ok := m.ItemByProductID(msg.ProductID); ok {
			return Reduce(m, SetQuantity{ProductID: msg.ProductID, Quantity: it.Quantity + 1})
		}
		return m, nil

	case DecrementItem:
		if it, ok := m.ItemByProductID(msg.ProductID); ok {
			return Reduce(m, SetQuantity{ProductID: msg.ProductID, Quantity: it.Quantity - 1})
		}
		return m, nil

	case ClearCart:
		return Model{}, nil
	}
	return m, nil
}

func removeItem(m Model, productID string) Model {
	for i, it := range m.Items {
		if it.Product.ID == productID {
			items := make([]models.CartItem, 0, len(m.Items)-1)
			items = append(items, m.Items[:i]...)
			items = append(items, m.Items[i+1:]...)
			return Model{Items: items}
		}
	}
	return m
}
