package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
)

// authService issues and verifies the HS256 access tokens of the delta API.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim of every issued token. Tokens with a
	// different issuer are rejected.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg *config.ServerConfig, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken returns ErrInvalidDataProvided for an empty subject.
func (a *authService) CreateToken(ctx context.Context, subject string) (string, error) {
	if subject == "" {
		return "", ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateToken").Msg("token creation failed")
		return "", fmt.Errorf("token creation failed: %w", err)
	}
	return token, nil
}

// ParseToken returns ErrTokenIsExpired for expired tokens and
// ErrTokenIsExpiredOrInvalid for every other verification failure.
func (a *authService) ParseToken(ctx context.Context, token string) (string, error) {
	subject, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenIsExpired
		}
		return "", ErrTokenIsExpiredOrInvalid
	}
	return subject, nil
}
