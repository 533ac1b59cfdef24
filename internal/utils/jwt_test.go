package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("geo-sync", "tablet-1", time.Hour, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ValidateAndParseJWTToken(token, "secret", "geo-sync")
	require.NoError(t, err)
	assert.Equal(t, "tablet-1", subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "s", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "s", 0, "key"},
		{"empty key", "iss", "s", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken("geo-sync", "s", time.Hour, "secret")
	require.NoError(t, err)

	expired := signClaims(t, jwt.RegisteredClaims{
		Issuer:    "geo-sync",
		Subject:   "s",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid, "other", "geo-sync")
		assert.Error(t, err)
	})
	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid, "secret", "someone-else")
		assert.Error(t, err)
	})
	t.Run("expired", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(expired, "secret", "geo-sync")
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken("not.a.token", "secret", "geo-sync")
		assert.Error(t, err)
	})
	t.Run("no subject", func(t *testing.T) {
		token := signClaims(t, jwt.RegisteredClaims{Issuer: "geo-sync"})
		_, err := ValidateAndParseJWTToken(token, "secret", "geo-sync")
		assert.ErrorIs(t, err, ErrEmptySubject)
	})
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidAuthHeader, header)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	live := signClaims(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})
	expired, err := TokenExpired(live, now)
	require.NoError(t, err)
	assert.False(t, expired)

	expired, err = TokenExpired(live, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, expired)

	noExp := signClaims(t, jwt.RegisteredClaims{Subject: "s"})
	expired, err = TokenExpired(noExp, now)
	require.NoError(t, err)
	assert.False(t, expired)

	_, err = TokenExpired("garbage", now)
	assert.Error(t, err)
}

func signClaims(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}
