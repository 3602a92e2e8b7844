package service

import (
	"context"
	"testing"
	"time"

	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/entity"
	"auction-desk-be/internal/repository/memory"
	"auction-desk-be/internal/repository/specification"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestEnv(t *testing.T) (IAuthService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := newTestFactory(t)
	cfg := newTestConfig(t)
	attempts := memory.NewLoginAttemptStore(time.Duration(cfg.Auth.LockoutWindowMins) * time.Minute)
	return NewAuthService(factory, cfg, attempts, nopLogger{}), factory
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, username, password string, isAdmin bool) {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}))
}

func TestLoginIssuesSignedToken(t *testing.T) {
	svc, factory := newAuthTestEnv(t)
	seedUser(t, factory, "admin", "admin123", true)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, true, claims["admin"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, factory := newAuthTestEnv(t)
	seedUser(t, factory, "admin", "admin123", true)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "admin123"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestLoginThrottlesRepeatedFailures(t *testing.T) {
	svc, factory := newAuthTestEnv(t)
	seedUser(t, factory, "admin", "admin123", true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
		require.Error(t, err)
	}

	// Even the correct password is refused while locked out.
	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestCreateUserGrantsAdmin(t *testing.T) {
	svc, _ := newAuthTestEnv(t)
	ctx := context.Background()

	res, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "clerk", Password: "longenough"})
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)

	// The issued token carries the claim the admin gate checks.
	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "clerk", Password: "longenough"})
	require.NoError(t, err)
	token, err := jwt.Parse(login.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, true, token.Claims.(jwt.MapClaims)["admin"])
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthTestEnv(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "clerk", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "clerk", Password: "longenough"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestChangePasswordRehashes(t *testing.T) {
	svc, factory := newAuthTestEnv(t)
	seedUser(t, factory, "clerk", "oldpassword", false)
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, &dto.ChangePasswordRequest{
		Username:    "clerk",
		NewPassword: "newpassword",
	}))

	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "clerk", Password: "oldpassword"})
	require.Error(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "clerk", Password: "newpassword"})
	require.NoError(t, err)
}

func TestDeleteUserProtectsAdminAccount(t *testing.T) {
	svc, factory := newAuthTestEnv(t)
	seedUser(t, factory, "admin", "admin123", true)
	seedUser(t, factory, "clerk", "password1", false)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, "admin")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidOperation))

	require.NoError(t, svc.DeleteUser(ctx, "clerk"))
	gone, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx,
		specification.ByUsername{Username: "clerk"})
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = svc.DeleteUser(ctx, "clerk")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}
