package service

import (
	"context"
	"testing"
	"time"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	profile, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "secret-password",
		Name:     "Test User",
		Phone:    "0800000000",
		Address:  "Jl. Demo 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", profile.Email)
	assert.Equal(t, int64(50000), profile.Balance)

	resp, err := env.auth.Authenticate(ctx, "test@example.com", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, profile.ID, resp.Profile.ID)

	account, err := env.auth.Resolve(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", account.Email)
}

func TestAuthService_RegisterNeverStoresRawCredential(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	account, err := env.accountRepo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", account.PasswordHash)
	assert.NotContains(t, account.PasswordHash, "secret-password")
}

func TestAuthService_DuplicateIdentity(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "dup@example.com", Password: "pw-one"}
	_, err := env.auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "pw-two"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "test@example.com", Password: "right"})
	require.NoError(t, err)

	// wrong password and unknown identity report the same error
	_, err = env.auth.Authenticate(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Authenticate(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_TokensAreUniquePerLogin(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "test@example.com", Password: "pw"})
	require.NoError(t, err)

	first, err := env.auth.Authenticate(ctx, "test@example.com", "pw")
	require.NoError(t, err)
	second, err := env.auth.Authenticate(ctx, "test@example.com", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// both concurrent sessions resolve
	_, err = env.auth.Resolve(ctx, first.Token)
	assert.NoError(t, err)
	_, err = env.auth.Resolve(ctx, second.Token)
	assert.NoError(t, err)
}

func TestAuthService_EndSessionIdempotent(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: "test@example.com", Password: "pw"})
	require.NoError(t, err)
	resp, err := env.auth.Authenticate(ctx, "test@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, env.auth.EndSession(ctx, resp.Token))

	_, err = env.auth.Resolve(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// ending an already-ended session is not an error
	assert.NoError(t, env.auth.EndSession(ctx, resp.Token))
	assert.NoError(t, env.auth.EndSession(ctx, "never-existed"))
}

func TestAuthService_ExpiredSession(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	sessionRepo := repository.NewSessionRepository(env.db)
	expiring := NewAuthService(env.accountRepo, sessionRepo, -time.Minute, 50000)

	_, err := expiring.Register(ctx, &dto.RegisterRequest{Email: "test@example.com", Password: "pw"})
	require.NoError(t, err)
	resp, err := expiring.Authenticate(ctx, "test@example.com", "pw")
	require.NoError(t, err)

	_, err = expiring.Resolve(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthService_ResolveUnknownToken(t *testing.T) {
	env := newTestEnv(t, time.Minute)

	_, err := env.auth.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = env.auth.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
