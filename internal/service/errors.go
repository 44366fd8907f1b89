package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/redact"
	"github.com/phrazzld/inventory-api/internal/store"
)

// Kind classifies a service failure. The api package maps each Kind to one
// HTTP status.
type Kind int

const (
	KindUnexpectedFailure Kind = iota
	KindNotFound
	KindInvalidIdentifier
	KindUniqueConstraintViolation
	KindInputValidationFailed
)

// Kinds lists every service failure kind.
var Kinds = []Kind{
	KindNotFound,
	KindInvalidIdentifier,
	KindUniqueConstraintViolation,
	KindInputValidationFailed,
	KindUnexpectedFailure,
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindUniqueConstraintViolation:
		return "unique_constraint_violation"
	case KindInputValidationFailed:
		return "input_validation_failed"
	default:
		return "unexpected_failure"
	}
}

// unexpectedMessage is the only text a client sees for an unexpected failure.
const unexpectedMessage = "An unexpected error occurred"

// ServiceError is returned by every service operation that fails. Message is
// safe to show to clients; Err keeps the underlying cause for logs.
type ServiceError struct {
	Kind      Kind
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed (%s): %s: %v", e.Operation, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed (%s): %s", e.Operation, e.Kind, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a ServiceError anywhere in err's chain. Any
// other error is an unexpected failure.
func KindOf(err error) Kind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnexpectedFailure
}

// KindForStore maps a storage kind onto the service kind that reports it.
func KindForStore(k store.Kind) Kind {
	switch k {
	case store.KindNotFound:
		return KindNotFound
	case store.KindInvalidIdentifier:
		return KindInvalidIdentifier
	case store.KindUniqueViolation:
		return KindUniqueConstraintViolation
	case store.KindOther:
		return KindUnexpectedFailure
	default:
		return KindUnexpectedFailure
	}
}

// FromStore translates a store error into a ServiceError for operation.
// ServiceErrors already in the chain are returned unchanged.
func FromStore(operation string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	kind := KindForStore(store.KindOf(err))
	return &ServiceError{
		Kind:      kind,
		Operation: operation,
		Message:   storeMessage(kind, err),
		Err:       err,
	}
}

// NewValidationError reports input that was rejected before reaching the store.
func NewValidationError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Kind:      KindInputValidationFailed,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func storeMessage(kind Kind, err error) string {
	switch kind {
	case KindNotFound:
		switch {
		case errors.Is(err, store.ErrPersonNotFound):
			return "person not found"
		case errors.Is(err, store.ErrItemNotFound):
			return "item not found"
		case errors.Is(err, store.ErrInvoiceNotFound):
			return "invoice not found"
		case errors.Is(err, store.ErrInvoiceItemNotFound):
			return "item is not attached to invoice"
		}
		return "resource not found"
	case KindInvalidIdentifier:
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) && storeErr.Entity != "" {
			return "invalid " + storeErr.Entity + " id"
		}
		return "invalid id"
	case KindUniqueConstraintViolation:
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return "email already exists"
		case errors.Is(err, store.ErrInvoiceItemExists):
			return "item already attached to invoice"
		}
		return "resource already exists"
	default:
		return unexpectedMessage
	}
}

// logFailure logs a failed operation. Unexpected failures are logged at
// error level; failures caused by the caller only at debug.
func logFailure(ctx context.Context, fallback *slog.Logger, operation string, err error) {
	log := logger.FromContextOrDefault(ctx, fallback)
	attrs := []any{
		slog.String("operation", operation),
		slog.String("kind", KindOf(err).String()),
		slog.String("error", redact.Error(err)),
	}
	if KindOf(err) == KindUnexpectedFailure {
		log.Error("service operation failed", attrs...)
		return
	}
	log.Debug("service operation rejected", attrs...)
}
