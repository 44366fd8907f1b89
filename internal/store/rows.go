package store

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the bookkeeping columns shared by every resource table.
// CreatedBy and CreatedAt never change after insert.
type Audit struct {
	CreatedBy     string    `db:"created_by"`
	CreatedAt     time.Time `db:"created_at"`
	LastChangedBy string    `db:"last_changed_by"`
	LastUpdate    time.Time `db:"last_update"`
}

// PersonRow is one row of the persons table.
type PersonRow struct {
	ID    int64     `db:"id"`
	AltID uuid.UUID `db:"alt_id"`
	Name  string    `db:"name"`
	Email string    `db:"email"`
	Audit
}

// ItemRow is one row of the items table.
type ItemRow struct {
	ID          int64     `db:"id"`
	AltID       uuid.UUID `db:"alt_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	UnitPrice   float64   `db:"unit_price"`
	Audit
}

// InvoiceRow is one row of the invoices table. UserID holds the external id
// of the owning person.
type InvoiceRow struct {
	ID     int64     `db:"id"`
	AltID  uuid.UUID `db:"alt_id"`
	UserID uuid.UUID `db:"user_id"`
	Total  float64   `db:"total"`
	Paid   bool      `db:"paid"`
	Audit
}

// InvoiceItemRow is one association between an invoice and an item.
type InvoiceItemRow struct {
	InvoiceID uuid.UUID `db:"invoice_id"`
	ItemID    uuid.UUID `db:"item_id"`
}

// InvoiceAggregate is an invoice together with the items attached to it,
// ordered by item sequence id.
type InvoiceAggregate struct {
	Invoice InvoiceRow
	Items   []ItemRow
}

// ParseExternalID parses a caller-supplied external id. Failures wrap
// ErrInvalidIdentifier.
func ParseExternalID(entity, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NewStoreError(entity, "parse id", "malformed external id",
			ErrInvalidIdentifier)
	}
	return parsed, nil
}
