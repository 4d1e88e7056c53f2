package services

import (
	"context"
	"testing"

	"prodigy-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.CreateUserRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "user", user.Role)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Create(ctx, models.CreateUserRequest{
			Name:  "Someone Else",
			Email: "ada@example.com",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("ExplicitRoleKept", func(t *testing.T) {
		admin, err := svc.Create(ctx, models.CreateUserRequest{
			Name:  "Root",
			Email: "root@example.com",
			Role:  "admin",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Role)
	})
}

func TestUserDelete(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.CreateUserRequest{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID.Hex()), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "???"), ErrInvalidID)

	_, err = svc.Create(ctx, models.CreateUserRequest{Name: "Back Again", Email: "ada@example.com"})
	require.NoError(t, err)
}

func TestUserList(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.Create(ctx, models.CreateUserRequest{Name: "User Name", Email: email})
		require.NoError(t, err)
	}

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
