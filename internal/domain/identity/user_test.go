package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates a customer with a hashed password", func(t *testing.T) {
		u, err := NewUser("Shopper@Example.com", "Shopper", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.Active)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.CheckPassword("s3cret-pass"))
		assert.False(t, u.CheckPassword("wrong-pass"))
	})

	t.Run("publishes a registered event", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")

		require.NoError(t, err)
		events := u.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Shopper", "s3cret-pass")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid")
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := NewUser("shopper@example.com", "  ", "s3cret-pass")

		require.Error(t, err)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		_, err := NewUser("shopper@example.com", "Shopper", "short")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUser_ChangePassword(t *testing.T) {
	t.Run("replaces the hash when the current password matches", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")
		require.NoError(t, err)

		require.NoError(t, u.ChangePassword("s3cret-pass", "another-pass"))

		assert.True(t, u.CheckPassword("another-pass"))
		assert.False(t, u.CheckPassword("s3cret-pass"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")
		require.NoError(t, err)

		err = u.ChangePassword("wrong-pass", "another-pass")

		require.Error(t, err)
		assert.True(t, u.CheckPassword("s3cret-pass"))
	})
}

func TestUser_Roles(t *testing.T) {
	t.Run("promotion grants admin", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")
		require.NoError(t, err)
		assert.False(t, u.IsAdmin())

		u.PromoteToAdmin()

		assert.True(t, u.IsAdmin())
	})

	t.Run("promotion is idempotent", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")
		require.NoError(t, err)

		u.PromoteToAdmin()
		v := u.GetVersion()
		u.PromoteToAdmin()

		assert.Equal(t, v, u.GetVersion())
	})

	t.Run("deactivation blocks the account", func(t *testing.T) {
		u, err := NewUser("shopper@example.com", "Shopper", "s3cret-pass")
		require.NoError(t, err)

		u.Deactivate()

		assert.False(t, u.Active)
	})
}
