package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/inventory-api/internal/config"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
)

// MinSecretLength is the shortest signing secret accepted at startup.
const MinSecretLength = 32

// TokenCodec issues and verifies bearer tokens.
type TokenCodec interface {
	// Issue signs a token for subject that expires after the configured lifetime.
	Issue(ctx context.Context, subject string) (token string, expiresAt time.Time, err error)

	// Verify checks the token signature, algorithm and expiry and returns its claims.
	// Any failure is reported as an error wrapping ErrInvalidToken.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Claims is the verified content of a bearer token. It lives only for the
// duration of one request.
type Claims struct {
	Subject   string    `json:"sub"`
	ExpiresAt time.Time `json:"exp"`
}

// hmacTokenCodec is a TokenCodec signing with HMAC-SHA256.
type hmacTokenCodec struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

var _ TokenCodec = (*hmacTokenCodec)(nil)

// NewTokenCodec creates a TokenCodec from the auth configuration.
// A secret shorter than MinSecretLength is rejected.
func NewTokenCodec(cfg config.AuthConfig) (TokenCodec, error) {
	return newHMACTokenCodec(cfg.JWTSecret,
		time.Duration(cfg.TokenLifetimeMinutes)*time.Minute, time.Now)
}

func newHMACTokenCodec(secret string, lifetime time.Duration, timeFunc func() time.Time) (*hmacTokenCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}
	return &hmacTokenCodec{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     30 * time.Second,
	}, nil
}

// Issue implements TokenCodec.Issue.
func (c *hmacTokenCodec) Issue(ctx context.Context, subject string) (string, time.Time, error) {
	now := c.timeFunc()
	expiresAt := now.Add(c.tokenLifetime)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.New().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return "", time.Time{}, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	// Second precision matches what a verifier will read back from exp.
	return signed, expiresAt.Truncate(time.Second), nil
}

// Verify implements TokenCodec.Verify.
func (c *hmacTokenCodec) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := c.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return c.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token verification failed: expired")
			return nil, ErrExpiredToken
		}
		log.Debug("token verification failed",
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || registered.Subject == "" {
		log.Debug("token verification failed: invalid claims")
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
