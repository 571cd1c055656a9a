package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/repository/memory"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/service"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

func testTokens() *crypto.TokenService {
	return crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     "fintracker",
		Audience:   "fintracker-api",
		SigningKey: "super-secret-key-for-tests-32-bytes!",
		AccessTTL:  15 * time.Minute,
	})
}

// создаём сервис
func newAuthService(t *testing.T) (*service.AuthService, *mocks.MockUsersRepo, *crypto.BcryptHasher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)

	return service.NewAuthService(users, hasher, testTokens()), users, hasher
}

// Успешная регистрация: email нормализуется, в хранилище уходит хэш
func TestAuthService_Register_OK(t *testing.T) {
	ctx := context.Background()
	svc, users, hasher := newAuthService(t)

	var storedHash string
	users.EXPECT().
		Create(ctx, "Ivan", "test@mail.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, hash string) (models.User, error) {
			storedHash = hash
			return models.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: hash}, nil
		})

	u, err := svc.Register(ctx, " Ivan ", "  Test@Mail.COM ", "strongpassword")
	require.NoError(t, err)
	require.Equal(t, "test@mail.com", u.Email)
	require.NotEqual(t, "strongpassword", storedHash)
	require.True(t, hasher.Verify("strongpassword", storedHash))
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	cases := []struct {
		name, email, password string
	}{
		{"", "a@mail.com", "strongpassword"},
		{"Ivan", "", "strongpassword"},
		{"Ivan", "not-an-email", "strongpassword"},
		{"Ivan", "a@mail.com", ""},
		{"Ivan", "a@mail.com", "short"},
	}
	for _, c := range cases {
		_, err := svc.Register(ctx, c.name, c.email, c.password)
		require.ErrorIs(t, err, serr.ErrInvalidInput, "%+v", c)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService(t)

	users.EXPECT().
		Create(ctx, "Ivan", "test@mail.com", gomock.Any()).
		Return(models.User{}, serr.ErrAlreadyExists)

	_, err := svc.Register(ctx, "Ivan", "test@mail.com", "strongpassword")
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Успех: subject токена совпадает с id пользователя
func TestAuthService_Login_OK(t *testing.T) {
	ctx := context.Background()
	svc, users, hasher := newAuthService(t)

	userID := uuid.New()
	hash, err := hasher.Hash("strongpassword")
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(models.User{ID: userID, Email: "test@mail.com", PasswordHash: hash}, nil)

	token, u, err := svc.Login(ctx, "Test@mail.com", "strongpassword")
	require.NoError(t, err)
	require.Equal(t, userID, u.ID)

	sub, err := testTokens().Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, sub)
}

// Неверный пароль
func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	svc, users, hasher := newAuthService(t)

	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(models.User{ID: uuid.New(), PasswordHash: hash}, nil)

	_, _, err = svc.Login(ctx, "test@mail.com", "wrong-password")
	require.ErrorIs(t, err, serr.ErrInvalidCredentials)
}

// Email не существует
func TestAuthService_Login_EmailNotFound(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(models.User{}, serr.ErrNotFound)

	_, _, err := svc.Login(ctx, "test@mail.com", "password")
	require.ErrorIs(t, err, serr.ErrUserNotFound)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(models.User{}, serr.ErrInternal)

	_, _, err := svc.Login(ctx, "test@mail.com", "password")
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "", "password")
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	_, _, err = svc.Login(context.Background(), "a@mail.com", "")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// register -> login на настоящем in-memory хранилище
func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := service.NewAuthService(store.Users(), crypto.NewBcryptHasher(bcrypt.MinCost), testTokens())

	u, err := svc.Register(ctx, "Ivan", "ivan@mail.com", "strongpassword")
	require.NoError(t, err)

	token, logged, err := svc.Login(ctx, "ivan@mail.com", "strongpassword")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)

	sub, err := testTokens().Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, sub)

	// повторная регистрация того же email
	_, err = svc.Register(ctx, "Other", "IVAN@mail.com", "anotherpassword")
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
	require.Equal(t, 1, store.Users().Count("ivan@mail.com"))
}
