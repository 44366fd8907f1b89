package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NewItem carries the caller-supplied fields of an item insert.
type NewItem struct {
	Name        string
	Description string
	UnitPrice   float64
	CreatedBy   string
}

// ItemUpdate carries the fields an update overwrites.
type ItemUpdate struct {
	Name        string
	Description string
	UnitPrice   float64
	ChangedBy   string
}

// ItemStore defines the interface for item data persistence.
// Error contracts match PersonStore, with ErrItemNotFound for missing rows.
type ItemStore interface {
	Create(ctx context.Context, it NewItem) (*ItemRow, error)
	GetBySequenceID(ctx context.Context, seq int64) (*ItemRow, error)
	GetByExternalID(ctx context.Context, id string) (*ItemRow, error)
	ListPage(ctx context.Context, cursor *Cursor) ([]ItemRow, error)
	Update(ctx context.Context, id string, upd ItemUpdate) (*ItemRow, error)
	Delete(ctx context.Context, id string) error
	WithTx(tx *sqlx.Tx) ItemStore
}
