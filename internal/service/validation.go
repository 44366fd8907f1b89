package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateRequest runs struct validation on req and reports the first
// failing field.
func validateRequest(operation string, req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError(operation, "invalid request", err)
	}
	fe := fieldErrs[0]
	return NewValidationError(operation,
		fmt.Sprintf("invalid %s: %s", fe.Field(), tagMessage(fe)), err)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " entries"
		}
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "validation failed"
	}
}

// checkPathID rejects an update whose body names a different resource than its path.
func checkPathID(operation, pathID, bodyID string) error {
	if !sameID(pathID, bodyID) {
		return NewValidationError(operation, "id in body does not match id in path", domain.ErrIDMismatch)
	}
	return nil
}

// sameID compares two external ids as UUIDs, so letter case and the
// braced or urn forms do not matter. Unparsable ids compare as strings.
func sameID(a, b string) bool {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ua == ub
}

// checkCursor rejects non-positive page sizes; oversized ones are clamped by the store.
func checkCursor(operation string, cursor *store.Cursor) error {
	if cursor != nil && cursor.PageSize <= 0 {
		return NewValidationError(operation, "page_size must be a positive integer", domain.ErrInvalidPageSize)
	}
	return nil
}

// actor picks who a write is attributed to: the body value when given,
// otherwise the token subject.
func actor(claims auth.Claims, fromBody string) string {
	if s := strings.TrimSpace(fromBody); s != "" {
		return s
	}
	return claims.Subject
}
