package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/domain"
)

func TestNewJWTProvider_RequiresSecret(t *testing.T) {
	_, err := NewJWTProvider("")
	assert.Error(t, err)
}

func TestJWTProvider_MintAndIdentify(t *testing.T) {
	provider, err := NewJWTProvider("test-secret")
	require.NoError(t, err)

	token, err := provider.Mint("coach-1", "coach@example.com", time.Hour)
	require.NoError(t, err)

	identity, err := provider.Identify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "coach-1", identity.UserID)
	assert.Equal(t, "coach@example.com", identity.Email)
}

func TestJWTProvider_RejectsEmptyToken(t *testing.T) {
	provider, err := NewJWTProvider("test-secret")
	require.NoError(t, err)

	_, err = provider.Identify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTProvider_RejectsWrongSecret(t *testing.T) {
	minter, err := NewJWTProvider("other-secret")
	require.NoError(t, err)
	provider, err := NewJWTProvider("test-secret")
	require.NoError(t, err)

	token, err := minter.Mint("coach-1", "", time.Hour)
	require.NoError(t, err)

	_, err = provider.Identify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTProvider_RejectsExpiredToken(t *testing.T) {
	provider, err := NewJWTProvider("test-secret")
	require.NoError(t, err)

	token, err := provider.Mint("coach-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = provider.Identify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTProvider_RejectsTokenWithoutSubject(t *testing.T) {
	provider, err := NewJWTProvider("test-secret")
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = provider.Identify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
