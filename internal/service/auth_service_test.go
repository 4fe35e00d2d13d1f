package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusorbit/backend/internal/repository"
)

func TestRegisterLoginAndParseToken(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)), "secret", time.Hour)
	ctx := context.Background()

	registered, apiErr := svc.Register(ctx, "  Ada@Example.com ", "123456")
	require.Nil(t, apiErr)
	assert.Equal(t, "ada@example.com", registered.User.Email)

	subject, apiErr := svc.ParseToken(registered.Token)
	require.Nil(t, apiErr)
	assert.Equal(t, registered.User.ID, subject)

	_, apiErr = svc.Register(ctx, "ada@example.com", "abcdef")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email_exists", apiErr.Code)

	loggedIn, apiErr := svc.Login(ctx, "ADA@example.com", "123456")
	require.Nil(t, apiErr)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, apiErr = svc.Login(ctx, "ada@example.com", "wrong-password")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)), "secret", time.Hour)
	ctx := context.Background()

	_, apiErr := svc.Register(ctx, " ", "123456")
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_email", apiErr.Code)

	_, apiErr = svc.Register(ctx, "a@example.com", "123")
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_password", apiErr.Code)
}

func TestParseTokenRejectsForeignAndExpiredTokens(t *testing.T) {
	database := newTestDB(t)
	issuer := NewAuthService(repository.NewUserRepository(database), "other-secret", time.Hour)
	verifier := NewAuthService(repository.NewUserRepository(database), "secret", time.Hour)

	result, apiErr := issuer.Register(context.Background(), "b@example.com", "123456")
	require.Nil(t, apiErr)

	_, apiErr = verifier.ParseToken(result.Token)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	expired := NewAuthService(repository.NewUserRepository(database), "secret", -time.Minute)
	stale, apiErr := expired.Login(context.Background(), "b@example.com", "123456")
	require.Nil(t, apiErr)
	_, apiErr = verifier.ParseToken(stale.Token)
	assert.NotNil(t, apiErr)
}
