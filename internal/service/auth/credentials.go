package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/phrazzld/inventory-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing secrets with their hash.
type PasswordVerifier interface {
	// Compare returns nil when password hashes to hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CredentialVerifier checks client credentials presented to the token endpoint.
type CredentialVerifier interface {
	Verify(clientID, clientSecret string) error
}

// ClientCredentials verifies a single configured client.
type ClientCredentials struct {
	clientID   string
	secretHash string
	verifier   PasswordVerifier
}

var _ CredentialVerifier = (*ClientCredentials)(nil)

// NewClientCredentials creates a verifier for the client configured in cfg.
func NewClientCredentials(cfg config.AuthConfig, verifier PasswordVerifier) (*ClientCredentials, error) {
	if cfg.ClientID == "" || cfg.ClientSecretHash == "" {
		return nil, errors.New("client id and client secret hash must be configured")
	}
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	return &ClientCredentials{
		clientID:   cfg.ClientID,
		secretHash: cfg.ClientSecretHash,
		verifier:   verifier,
	}, nil
}

// Verify returns ErrWrongCredentials unless both the id and the secret match.
func (c *ClientCredentials) Verify(clientID, clientSecret string) error {
	idMatches := subtle.ConstantTimeCompare([]byte(clientID), []byte(c.clientID)) == 1
	// The hash is always compared so an unknown id costs the same as a wrong secret.
	secretErr := c.verifier.Compare(c.secretHash, clientSecret)
	if !idMatches || secretErr != nil {
		return ErrWrongCredentials
	}
	return nil
}

// HashSecret returns the bcrypt hash stored as auth.client_secret_hash.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
