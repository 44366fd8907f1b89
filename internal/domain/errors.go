package domain

import "errors"

var (
	// ErrIDMismatch is returned when the id in an update body differs from
	// the id addressed by the request path.
	ErrIDMismatch = errors.New("path id does not match body id")

	// ErrInvalidPageSize is returned for a page size that is not a positive integer.
	ErrInvalidPageSize = errors.New("page size must be a positive integer")
)
