package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemSnapshot holds the product display fields captured at the time the
// product was added to the cart. Later catalog edits do not rewrite it.
type ItemSnapshot struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Category  string          `json:"category"`
	SKU       string          `json:"sku"`
}

// Item is one cart entry: a product snapshot plus a quantity.
// Invariant: Quantity >= 1; an entry that would drop to zero is removed.
type Item struct {
	ItemSnapshot
	Quantity int `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this entry
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the mutable set of product selections for one owner (a user or an
// anonymous session). It holds at most one Item per product identifier and
// preserves insertion order.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for the given owner
func New(id string) *Cart {
	return &Cart{
		ID:        id,
		Items:     make([]Item, 0),
		UpdatedAt: time.Now(),
	}
}

// AddItem merges the product into the cart: if an entry for the product
// already exists its quantity is incremented by qty, otherwise a new entry
// carrying the snapshot is appended. Callers are expected to pass qty >= 1.
func (c *Cart) AddItem(snapshot ItemSnapshot, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == snapshot.ProductID {
			c.Items[i].Quantity += qty
			c.touch()
			return
		}
	}

	c.Items = append(c.Items, Item{ItemSnapshot: snapshot, Quantity: qty})
	c.touch()
}

// RemoveItem removes the entry for the given product. Removing a product
// that is not in the cart is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the entry for the given product.
// A quantity of zero or less removes the entry. Updating a product that is
// not in the cart is a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			c.touch()
			return
		}
	}
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	if len(c.Items) == 0 {
		return
	}
	c.Items = c.Items[:0]
	c.touch()
}

// Contains reports whether the cart holds an entry for the given product
func (c *Cart) Contains(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the sum of quantities across all entries
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// Total returns the sum of snapshot price times quantity across all entries
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
