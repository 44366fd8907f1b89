package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NewPerson carries the caller-supplied fields of a person insert.
type NewPerson struct {
	Name      string
	Email     string
	CreatedBy string
}

// PersonUpdate carries the fields an update overwrites.
type PersonUpdate struct {
	Name      string
	Email     string
	ChangedBy string
}

// PersonStore defines the interface for person data persistence.
type PersonStore interface {
	// Create inserts a person and returns the stored row.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, p NewPerson) (*PersonRow, error)

	// GetBySequenceID returns ErrPersonNotFound if no row has that sequence id.
	GetBySequenceID(ctx context.Context, seq int64) (*PersonRow, error)

	// GetByExternalID returns ErrInvalidIdentifier for a malformed id and
	// ErrPersonNotFound if no row matches.
	GetByExternalID(ctx context.Context, id string) (*PersonRow, error)

	// ListPage returns at most cursor.PageSize rows after cursor.LastSeenID.
	// A nil cursor is the default cursor.
	ListPage(ctx context.Context, cursor *Cursor) ([]PersonRow, error)

	// Update overwrites name and email of the person with the given external id.
	Update(ctx context.Context, id string, upd PersonUpdate) (*PersonRow, error)

	// Delete removes the person with the given external id.
	Delete(ctx context.Context, id string) error

	// WithTx returns a PersonStore bound to tx.
	WithTx(tx *sqlx.Tx) PersonStore
}
