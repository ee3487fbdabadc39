package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/storefront/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store in process memory. It is used
// in tests and single-instance development runs; state is lost on restart.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewInMemoryCartStore creates an empty in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[string][]byte),
	}
}

// Load returns the stored cart, or an empty cart when nothing is stored
// or the stored value cannot be decoded
func (s *InMemoryCartStore) Load(_ context.Context, id string) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[id]
	s.mu.RUnlock()

	if !ok {
		return cart.New(id), nil
	}

	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return cart.New(id), nil
	}

	c := cart.New(id)
	c.Items = items
	return c, nil
}

// Save stores the cart's items, replacing any previous state
func (s *InMemoryCartStore) Save(_ context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[c.ID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the stored cart
func (s *InMemoryCartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
	return nil
}

// Seed stores a raw value for a cart, for tests that need to exercise
// decoding of stored state
func (s *InMemoryCartStore) Seed(id string, raw []byte) {
	s.mu.Lock()
	s.carts[id] = raw
	s.mu.Unlock()
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
