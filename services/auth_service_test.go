package services

import (
	"context"
	"testing"

	"prodigy-server/config"
	"prodigy-server/models"
	"prodigy-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		TokenSecret: "test-secret",
		JWTExpiry:   "1h",
	}
	m.Run()
}

func TestRegisterAndLogin(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	require.NoError(t, err)
	assert.True(t, reg.Success)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "user", reg.User.Role)

	claims, err := utils.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, models.RegisterRequest{
			Name:     "Ada Again",
			Email:    "ada@example.com",
			Password: "difference-engine",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("LoginSucceeds", func(t *testing.T) {
		resp, err := svc.Login(ctx, models.LoginRequest{
			Email:    "ada@example.com",
			Password: "difference-engine",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{
			Email:    "ada@example.com",
			Password: "analytical-engine",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "cobol1959",
	})
	require.NoError(t, err)

	require.Len(t, store.users, 1)
	assert.NotEqual(t, "cobol1959", store.users[0].Password)

	ok, err := utils.VerifyPassword(store.users[0].Password, "cobol1959")
	require.NoError(t, err)
	assert.True(t, ok)
}
