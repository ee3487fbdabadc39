package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-0123456789abcdef",
		RefreshSecret:          "test-refresh-secret-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        10,
	})
}

func newTestAuthService(repo *MockUserRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(repo, newTestJWTService(), blacklist, zap.NewNop()), blacklist
}

func testUser(t *testing.T) *identity.User {
	user, err := identity.NewUser("ada@example.com", "Ada", "correct horse battery")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account and returns tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "ada@example.com",
			Name:     "Ada",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "ada@example.com", resp.User.Email)
		assert.Equal(t, "customer", resp.User.Role)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "ada@example.com",
			Name:     "Ada",
			Password: "correct horse battery",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(testUser(t), nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email uses the same error as wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever-pass",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)
		user.Deactivate()

		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "correct horse battery",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("issues a new pair for a valid refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)

		repo.On("ExistsByEmail", mock.Anything, user.Email).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		registered, err := svc.Register(context.Background(), RegisterRequest{
			Email:    user.Email,
			Name:     user.Name,
			Password: "correct horse battery",
		})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(user, nil)

		resp, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: registered.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, registered.RefreshToken, resp.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "not-a-jwt"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects token revoked for the user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, blacklist := newTestAuthService(repo)
		user := testUser(t)

		repo.On("ExistsByEmail", mock.Anything, user.Email).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		registered, err := svc.Register(context.Background(), RegisterRequest{
			Email:    user.Email,
			Name:     user.Name,
			Password: "correct horse battery",
		})
		require.NoError(t, err)

		// Revocation timestamps have second granularity
		time.Sleep(1100 * time.Millisecond)
		require.NoError(t, blacklist.RevokeAllForUser(context.Background(), registered.User.ID.String(), time.Hour))

		_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: registered.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "a whole new password",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("revokes outstanding tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, blacklist := newTestAuthService(repo)
		user := testUser(t)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
			CurrentPassword: "correct horse battery",
			NewPassword:     "a whole new password",
		})
		require.NoError(t, err)

		revoked, err := blacklist.IsUserRevoked(context.Background(), user.ID.String(), time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, revoked)
		assert.True(t, user.CheckPassword("a whole new password"))
	})
}
