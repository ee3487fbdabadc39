package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

// RedisCartStore implements cart.Store on Redis. Carts are stored as a
// JSON array of items under cart:<id>, with a sliding TTL refreshed on
// every save.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisCartStore creates a cart store on an existing Redis client
func NewRedisCartStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *RedisCartStore) key(id string) string {
	return s.keyPrefix + id
}

// Load returns the stored cart, or an empty cart when nothing is stored.
// A value that cannot be decoded is treated the same as no value: the
// shopper gets a fresh cart instead of an error, and the corrupt entry is
// logged and overwritten on the next save.
func (s *RedisCartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return cart.New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("stored cart is unreadable, starting fresh",
			zap.String("cart_id", id),
			zap.Error(err))
		return cart.New(id), nil
	}

	c := cart.New(id)
	c.Items = items
	return c, nil
}

// Save writes the cart's items and refreshes the TTL
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(c.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the stored cart
func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
