package cart

import "context"

// Store persists carts keyed by owner identifier. Load never fails on a
// missing or unreadable cart: implementations return an empty cart so a
// shopper always starts from a usable state.
type Store interface {
	// Load returns the cart for the given owner, or a fresh empty cart
	// when none is stored or the stored value cannot be decoded.
	Load(ctx context.Context, id string) (*Cart, error)

	// Save writes the cart, replacing any previously stored state.
	Save(ctx context.Context, c *Cart) error

	// Delete removes the stored cart. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, id string) error
}
