// Package mocks provides hand-written test doubles for the store and auth
// interfaces.
//
// Most mocks use function fields: a nil field falls back to a zero-value
// success, so a test only sets the calls it cares about and can count calls
// through the Calls fields.
//
//	persons := &mocks.MockPersonStore{
//	    GetByExternalIDFn: func(ctx context.Context, id string) (*store.PersonRow, error) {
//	        return nil, store.ErrPersonNotFound
//	    },
//	}
//
// CredentialVerifier is mocked with testify/mock for expectation-style tests.
package mocks
