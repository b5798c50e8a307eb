package service_test

import (
	"context"
	"testing"

	"github.com/muhammadjayadi/larastore-management/internal/config"
	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/model"
	"github.com/muhammadjayadi/larastore-management/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedActiveUser(t *testing.T, repo *stubUserRepo, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Name:         "Jaya",
		Username:     username,
		Email:        username + "@example.com",
		Roles:        []string{model.RoleAdmin},
		Status:       model.StatusActive,
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "jaya", "secret123")
	svc := service.NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "jaya",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "jaya", resp.User.Username)

	// The access token must carry id, username and roles.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "jaya", claims["username"])
	assert.NotEmpty(t, claims["user_id"])
	assert.NotEmpty(t, claims["roles"])
}

func TestLoginByEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "jaya", "secret123")
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "jaya@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "jaya", "secret123")
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "jaya",
		Password: "nope",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := service.NewAuthService(newStubUserRepo(), authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ghost",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedActiveUser(t, repo, "jaya", "secret123")
	u.Status = model.StatusInactive
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "jaya",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "jaya", "secret123")
	svc := service.NewAuthService(repo, authTestConfig())
	ctx := context.Background()

	first, err := svc.Login(ctx, dto.LoginRequest{Username: "jaya", Password: "secret123"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(newStubUserRepo(), authTestConfig())
	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedActiveUser(t, repo, "jaya", "secret123")
	svc := service.NewAuthService(repo, authTestConfig())
	ctx := context.Background()

	first, err := svc.Login(ctx, dto.LoginRequest{Username: "jaya", Password: "secret123"})
	require.NoError(t, err)

	u.Status = model.StatusInactive
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.Error(t, err)
}
