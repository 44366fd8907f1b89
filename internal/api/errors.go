package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/service"
)

// StatusForKind maps a service failure kind to its HTTP status.
func StatusForKind(k service.Kind) int {
	switch k {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindInvalidIdentifier:
		return http.StatusBadRequest
	case service.KindUniqueConstraintViolation:
		return http.StatusConflict
	case service.KindInputValidationFailed:
		return http.StatusBadRequest
	case service.KindUnexpectedFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the text a client may see for err. Only
// ServiceError messages are passed through; anything else is generic.
func GetSafeErrorMessage(err error) string {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) && svcErr.Kind != service.KindUnexpectedFailure && svcErr.Message != "" {
		return svcErr.Message
	}
	return "An unexpected error occurred"
}

// HandleAPIError writes the error response for a failed service call.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForKind(service.KindOf(err))
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
