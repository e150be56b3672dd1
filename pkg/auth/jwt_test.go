package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/config"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/pkg/auth"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "ayursutra-test",
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := auth.NewJWTManager(testConfig())
	claims := &domain.Claims{UserID: uuid.New(), Email: "dr@clinic.io"}

	pair, err := m.GenerateTokenPair(claims)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.True(t, pair.ExpiresAt.After(time.Now()))

	got, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, claims.UserID, got.UserID)
	require.Equal(t, claims.Email, got.Email)

	ref, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, claims.UserID, ref.UserID)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	m := auth.NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Email: "dr@clinic.io"})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenTypeMismatch)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, auth.ErrTokenTypeMismatch)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	m := auth.NewJWTManager(cfg)

	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Email: "dr@clinic.io"})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	m := auth.NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Email: "dr@clinic.io"})
	require.NoError(t, err)

	other := testConfig()
	other.Secret = "another-secret-another-secret-12345"
	_, err = auth.NewJWTManager(other).ValidateAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}
