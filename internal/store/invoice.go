package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NewInvoice carries the caller-supplied fields of an invoice insert.
// PersonID is the external id of the owning person.
type NewInvoice struct {
	PersonID  string
	Total     float64
	Paid      bool
	CreatedBy string
}

// InvoiceUpdate carries the fields an update overwrites.
type InvoiceUpdate struct {
	Total     float64
	Paid      bool
	ChangedBy string
}

// InvoiceStore defines the interface for invoice data persistence,
// including the invoice/item association.
type InvoiceStore interface {
	// Create inserts an invoice for an existing person.
	// Returns ErrPersonNotFound if the person does not exist.
	Create(ctx context.Context, inv NewInvoice) (*InvoiceRow, error)

	GetBySequenceID(ctx context.Context, seq int64) (*InvoiceRow, error)
	GetByExternalID(ctx context.Context, id string) (*InvoiceRow, error)
	ListPage(ctx context.Context, cursor *Cursor) ([]InvoiceRow, error)
	Update(ctx context.Context, id string, upd InvoiceUpdate) (*InvoiceRow, error)
	Delete(ctx context.Context, id string) error

	// ListByPerson returns every invoice owned by the person, ascending by sequence id.
	ListByPerson(ctx context.Context, personID string) ([]InvoiceRow, error)

	// GetWithItems returns the invoice and its items in one aggregate.
	// An invoice with no items yields an empty Items slice, not ErrInvoiceNotFound.
	GetWithItems(ctx context.Context, id string) (*InvoiceAggregate, error)

	// AddItem attaches an item to an invoice and stamps the invoice's audit columns.
	// Returns ErrNotFound if either side is missing and ErrInvoiceItemExists
	// if the pair is already attached.
	AddItem(ctx context.Context, invoiceID, itemID, actor string) (*InvoiceItemRow, error)

	// RemoveItem detaches an item. Returns ErrInvoiceItemNotFound if the pair did not exist.
	RemoveItem(ctx context.Context, invoiceID, itemID, actor string) error

	// WithTx returns an InvoiceStore bound to tx.
	WithTx(tx *sqlx.Tx) InvoiceStore
}
