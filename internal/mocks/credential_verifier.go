package mocks

import (
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// TestifyMockCredentialVerifier is a mock of auth.CredentialVerifier for use with testify/mock.
type TestifyMockCredentialVerifier struct {
	mock.Mock
}

var _ auth.CredentialVerifier = (*TestifyMockCredentialVerifier)(nil)

// Verify is a mock implementation of auth.CredentialVerifier.Verify
func (m *TestifyMockCredentialVerifier) Verify(clientID, clientSecret string) error {
	args := m.Called(clientID, clientSecret)
	return args.Error(0)
}
