package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

func newTestUserService(repo *MockUserRepository) *UserService {
	return NewUserService(repo, zap.NewNop())
}

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo)

	users := []identity.User{*testUser(t), *testUser(t)}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(users, nil)
	repo.On("Count", mock.Anything).Return(int64(2), nil)

	result, err := svc.List(context.Background(), UserListFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.Page)
	repo.AssertExpectations(t)
}

func TestUserService_Get(t *testing.T) {
	t.Run("returns user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestUserService(repo)

		user := testUser(t)
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		resp, err := svc.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestUserService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Get(context.Background(), id)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestUserService_Promote(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo)

	user := testUser(t)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Promote(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(identity.RoleAdmin), resp.Role)
	assert.True(t, user.IsAdmin())
	repo.AssertExpectations(t)
}

func TestUserService_Deactivate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo)

	user := testUser(t)
	require.True(t, user.Active)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Deactivate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.False(t, user.Active)
	repo.AssertExpectations(t)
}
