package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

// claimsFrom returns the caller's claims placed in the context by the auth
// middleware. Routes without the middleware get zero claims.
func claimsFrom(r *http.Request) auth.Claims {
	claims, _ := shared.ClaimsFromContext(r.Context())
	return claims
}

// pathID returns a chi path parameter. Parsing is left to the store so that
// malformed ids are reported as invalid identifiers.
func pathID(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// parseCursor reads last_id and page_size from the query string.
// A request with neither gets a nil cursor.
func parseCursor(r *http.Request, operation string) (*store.Cursor, error) {
	q := r.URL.Query()
	rawLast, rawSize := q.Get("last_id"), q.Get("page_size")
	if rawLast == "" && rawSize == "" {
		return nil, nil
	}

	cursor := store.DefaultCursor()
	if rawLast != "" {
		last, err := strconv.ParseInt(rawLast, 10, 64)
		if err != nil {
			return nil, service.NewValidationError(operation, "last_id must be an integer", err)
		}
		cursor.LastSeenID = &last
	}
	if rawSize != "" {
		size, err := strconv.Atoi(rawSize)
		if err != nil {
			return nil, service.NewValidationError(operation, "page_size must be an integer", err)
		}
		cursor.PageSize = size
	}
	return &cursor, nil
}

// parseBoolQuery reads an optional boolean query parameter.
func parseBoolQuery(r *http.Request, name, operation string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, service.NewValidationError(operation, name+" must be true or false", err)
	}
	return v, nil
}

// decodeBody decodes a JSON request body, reporting failures as input
// validation errors.
func decodeBody(w http.ResponseWriter, r *http.Request, operation string, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return service.NewValidationError(operation, "invalid request body", err)
	}
	return nil
}
