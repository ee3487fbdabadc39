package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())

	assert.NotNil(t, logger)
	// Should be usable without panicking
	logger.Info("no-op")
}

func TestWithRequestID(t *testing.T) {
	ctx, logger := WithRequestID(context.Background(), zap.NewNop(), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.NotNil(t, logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-456")

	assert.Equal(t, "user-456", GetUserID(ctx))
}

func TestWithCartID(t *testing.T) {
	ctx, _ := WithCartID(context.Background(), zap.NewNop(), "cart-789")

	assert.Equal(t, "cart-789", GetCartID(ctx))
}

func TestGetters_Missing(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetCartID(ctx))
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, "user-456")
	ctx = context.WithValue(ctx, CartIDKey, "cart-789")

	WithLogger(ctx, base).Info("cart updated")

	entries := recorded.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "user-456", fields["user_id"])
	assert.Equal(t, "cart-789", fields["cart_id"])
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	// Must not panic
	cl.Info("message")
	cl.Debug("message")
	cl.Warn("message")
	cl.Error("message")
}

func TestL_UsesContextLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	L(ctx).Info("hello")

	assert.Equal(t, 1, recorded.Len())
}
