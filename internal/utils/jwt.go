package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	ErrEmptySubject       = errors.New("empty subject")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header")
)

// GenerateJWTToken creates an HS256 token for subject valid for
// tokenDuration.
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject == "" || tokenDuration <= 0 || signKey == "" {
		return "", ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}
	return signed, nil
}

// ValidateAndParseJWTToken verifies signature, issuer and expiry and returns
// the subject. Expired tokens wrap [jwt.ErrTokenExpired].
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return "", ErrEmptySubject
	}
	return subject, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer x"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// TokenExpired reports whether the token's exp claim lies before now. The
// signature is not checked: the client cannot verify it and only uses the
// answer to skip requests the server would reject. Tokens without exp never
// expire; unparsable tokens return an error.
func TokenExpired(tokenString string, now time.Time) (bool, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.RegisteredClaims{})
	if err != nil {
		return false, fmt.Errorf("error parsing token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("error reading token expiry: %w", err)
	}
	if exp == nil {
		return false, nil
	}
	return !now.Before(exp.Time), nil
}
