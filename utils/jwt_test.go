package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
)

func setTestSecret(expiry time.Duration) {
	config.App = config.Settings{
		JWTSecret: "test-secret",
		JWTExpiry: expiry,
	}
}

func TestGenerateAndVerify_Success(t *testing.T) {
	setTestSecret(time.Hour)

	tok, err := GenerateJWT("64f000000000000000000001", "alice@example.com")
	require.NoError(t, err)

	claims, err := VerifyJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestVerifyJWT_Expired(t *testing.T) {
	setTestSecret(-time.Second)

	tok, err := GenerateJWT("u1", "a@x.com")
	require.NoError(t, err)

	_, err = VerifyJWT(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	setTestSecret(time.Hour)
	tok, err := GenerateJWT("u2", "b@x.com")
	require.NoError(t, err)

	config.App.JWTSecret = "another-secret"
	_, err = VerifyJWT(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// A token signed with a different algorithm must fail as invalid, never as
// expired, even when it is also past its expiry.
func TestVerifyJWT_WrongAlgorithm(t *testing.T) {
	setTestSecret(time.Hour)

	claims := Claims{
		UserID: "u3",
		Email:  "c@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(config.App.JWTSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	setTestSecret(time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := VerifyJWT(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerifyJWT_MissingUserID(t *testing.T) {
	setTestSecret(time.Hour)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.App.JWTSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
