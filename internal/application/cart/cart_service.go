package cart

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles cart operations. Every mutation is written through
// to the store immediately, so the cart a shopper sees after a refresh is
// always the one they last touched.
type CartService struct {
	store        cart.Store
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	store cart.Store,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		store:        store,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Get returns the current cart for the given owner
func (s *CartService) Get(ctx context.Context, cartID string) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AddItem adds a product to the cart, merging with an existing line when
// the product is already present. The product's display fields are
// snapshotted into the cart at this moment.
func (s *CartService) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.AddItem(s.snapshot(ctx, product), req.Quantity)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added",
		zap.String("cart_id", cartID),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	resp := ToCartResponse(c)
	return &resp, nil
}

// UpdateItem replaces a line's quantity. Zero removes the line; updating
// a product that is not in the cart is a no-op.
func (s *CartService) UpdateItem(ctx context.Context, cartID string, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, req.Quantity)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// RemoveItem removes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// Clear empties the cart. Clearing an already empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, cartID string) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Clear()

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

func (s *CartService) snapshot(ctx context.Context, product *catalog.Product) cart.ItemSnapshot {
	categoryName := ""
	if product.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *product.CategoryID)
		if err == nil {
			categoryName = category.Name
		} else {
			s.logger.Warn("category lookup failed for cart snapshot",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}

	return cart.ItemSnapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Category:  categoryName,
		SKU:       product.SKU,
	}
}
