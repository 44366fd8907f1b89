package auth

import (
	"errors"
	"fmt"
)

// Common authentication errors
var (
	// ErrInvalidToken covers every token that must not be accepted: bad
	// signature, unexpected algorithm, malformed input or expiry.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired. It wraps ErrInvalidToken
	// so callers that only care about acceptance need a single check.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = fmt.Errorf("%w: token is missing", ErrInvalidToken)

	// ErrWrongCredentials is returned when a client id or secret does not match.
	ErrWrongCredentials = errors.New("wrong credentials")

	// ErrWeakSecret is returned at startup when the signing secret is too short.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)
