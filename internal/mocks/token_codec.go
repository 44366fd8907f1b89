package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/inventory-api/internal/service/auth"
)

// MockTokenCodec is a mock implementation of auth.TokenCodec.
type MockTokenCodec struct {
	IssueFn  func(ctx context.Context, subject string) (string, time.Time, error)
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Defaults used when the function fields are nil.
	Token       string
	ExpiresAt   time.Time
	IssueErr    error
	Claims      *auth.Claims
	VerifyErr   error
	VerifyCalls int
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

// NewMockTokenCodec returns a codec that issues "mock-token" and accepts any
// token as subject "test-client".
func NewMockTokenCodec() *MockTokenCodec {
	exp := time.Now().Add(time.Hour)
	return &MockTokenCodec{
		Token:     "mock-token",
		ExpiresAt: exp,
		Claims:    &auth.Claims{Subject: "test-client", ExpiresAt: exp},
	}
}

func (m *MockTokenCodec) Issue(ctx context.Context, subject string) (string, time.Time, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, subject)
	}
	return m.Token, m.ExpiresAt, m.IssueErr
}

func (m *MockTokenCodec) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	m.VerifyCalls++
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Claims, nil
}
