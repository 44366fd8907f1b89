package store

import (
	"errors"
	"fmt"
)

// Kind classifies a storage failure. Every error returned by a store
// implementation resolves to exactly one Kind through KindOf.
type Kind int

const (
	// KindOther covers every driver failure without a more specific mapping,
	// including connection loss and context deadlines while waiting on the pool.
	KindOther Kind = iota
	// KindNotFound means a row that was expected to exist was not there.
	KindNotFound
	// KindInvalidIdentifier means a caller-supplied external id could not be parsed.
	KindInvalidIdentifier
	// KindUniqueViolation means the database rejected a write on a unique constraint.
	KindUniqueViolation
)

// Kinds lists every storage failure kind. Mapping tables in the service and
// api layers are tested against this list.
var Kinds = []Kind{KindNotFound, KindInvalidIdentifier, KindUniqueViolation, KindOther}

// String returns the name of the kind as used in logs.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindUniqueViolation:
		return "unique_violation"
	default:
		return "other"
	}
}

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidIdentifier is returned when an external id is not a well-formed UUID.
	// Stores raise it before any statement is sent to the database.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrUniqueViolation is returned when a write would duplicate a unique value.
	ErrUniqueViolation = errors.New("unique constraint violation")

	ErrPersonNotFound      = fmt.Errorf("%w: person", ErrNotFound)
	ErrItemNotFound        = fmt.Errorf("%w: item", ErrNotFound)
	ErrInvoiceNotFound     = fmt.Errorf("%w: invoice", ErrNotFound)
	ErrInvoiceItemNotFound = fmt.Errorf("%w: invoice item", ErrNotFound)

	// ErrEmailExists indicates that a person with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrUniqueViolation)

	// ErrInvoiceItemExists indicates the item is already attached to the invoice.
	ErrInvoiceItemExists = fmt.Errorf("%w: invoice item", ErrUniqueViolation)
)

// KindOf reports the storage kind of err. Nil and unrecognised errors are KindOther.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidIdentifier
	case errors.Is(err, ErrUniqueViolation):
		return KindUniqueViolation
	default:
		return KindOther
	}
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "person", "invoice")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
