package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// MockOrderRepository is a testify mock for order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// stubGateway answers every session request with a fixed outcome
type stubGateway struct {
	url string
	err error
}

func (g *stubGateway) CreateSession(_ context.Context, _ checkout.SessionRequest) (*checkout.Session, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &checkout.Session{URL: g.url}, nil
}

type checkoutTestEnv struct {
	engine    *gin.Engine
	store     *cache.InMemoryCartStore
	orderRepo *MockOrderRepository
	jwt       *auth.JWTService
}

func newCheckoutTestEnv(t *testing.T, gateway checkout.Gateway) *checkoutTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryCartStore()
	orderRepo := new(MockOrderRepository)
	service := checkoutapp.NewCheckoutService(store, gateway, orderRepo, zap.NewNop())
	h := NewCheckoutHandler(service)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "checkout-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        10,
	})

	engine := gin.New()
	engine.Use(
		middleware.CartID(config.CookieConfig{Path: "/", SameSite: "lax"}),
		middleware.OptionalJWTAuthMiddleware(jwtService),
	)
	group := engine.Group("/api/v1/checkout")
	group.POST("/session", h.CreateSession)
	group.POST("/success", h.Complete)
	group.POST("/cancel", h.Cancel)

	return &checkoutTestEnv{engine: engine, store: store, orderRepo: orderRepo, jwt: jwtService}
}

func (env *checkoutTestEnv) seedCart(t *testing.T, cartID string) *cart.Cart {
	t.Helper()
	c := cart.New(cartID)
	c.AddItem(cart.ItemSnapshot{
		ProductID: uuid.New(),
		Name:      "Stoneware Mug",
		Price:     decimal.RequireFromString("19.50"),
		SKU:       "MUG-01",
	}, 2)
	require.NoError(t, env.store.Save(context.Background(), c))
	return c
}

func (env *checkoutTestEnv) post(t *testing.T, cartID, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload := []byte("{}")
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.CartCookieName, Value: cartID})
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func sessionBody() map[string]any {
	return map[string]any{
		"success_url": "https://shop.example.com/checkout/success",
		"cancel_url":  "https://shop.example.com/checkout/cancel",
	}
}

func TestCheckoutHandler_CreateSession(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	w := env.post(t, cartID, "/api/v1/checkout/session", "", sessionBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://pay.example.com/s/abc")
}

func TestCheckoutHandler_CreateSessionEmptyCart(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})

	w := env.post(t, uuid.New().String(), "/api/v1/checkout/session", "", sessionBody())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_CART_EMPTY")
	assert.Contains(t, w.Body.String(), "Your cart is empty")
}

func TestCheckoutHandler_CreateSessionGatewayFailure(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{err: checkout.NewGatewayError("card network unavailable")})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	w := env.post(t, cartID, "/api/v1/checkout/session", "", sessionBody())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_PAYMENT_GATEWAY")
	assert.Contains(t, w.Body.String(), "card network unavailable")
}

func TestCheckoutHandler_CreateSessionValidation(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	w := env.post(t, cartID, "/api/v1/checkout/session", "", map[string]any{
		"success_url": "not-a-url",
		"cancel_url":  "https://shop.example.com/checkout/cancel",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "success_url")
}

func TestCheckoutHandler_CompleteRecordsOrderAndClearsCart(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	userID := uuid.New()
	pair, err := env.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: userID,
		Email:  "shopper@example.com",
		Role:   "customer",
	})
	require.NoError(t, err)

	var saved *order.Order
	env.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
		Return(nil)

	w := env.post(t, cartID, "/api/v1/checkout/success", pair.AccessToken, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, saved)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, order.StatusPaid, saved.Status)
	assert.Equal(t, "39.00", saved.Total.String())

	// The cart is empty afterwards
	c, err := env.store.Load(context.Background(), cartID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// A second landing on the success page is a no-op, not a duplicate order
	w = env.post(t, cartID, "/api/v1/checkout/success", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.orderRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCheckoutHandler_CompleteRequiresAuth(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	w := env.post(t, cartID, "/api/v1/checkout/success", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutHandler_CancelLeavesCartUntouched(t *testing.T) {
	env := newCheckoutTestEnv(t, &stubGateway{url: "https://pay.example.com/s/abc"})
	cartID := uuid.New().String()
	env.seedCart(t, cartID)

	w := env.post(t, cartID, "/api/v1/checkout/cancel", "", nil)

	require.Equal(t, http.StatusNoContent, w.Code)

	c, err := env.store.Load(context.Background(), cartID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())
}
