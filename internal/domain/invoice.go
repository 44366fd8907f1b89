package domain

import "github.com/google/uuid"

// Invoice is a bill owned by a person. PersonID is the owner's external id.
type Invoice struct {
	ID       uuid.UUID `json:"id"`
	Seq      int64     `json:"-"`
	PersonID uuid.UUID `json:"user_id"`
	Total    float64   `json:"total"`
	Paid     bool      `json:"paid"`
	Audit
}

// InvoiceWithItems is an invoice together with its line items, ordered by
// the order in which the items were created. Items is never nil.
type InvoiceWithItems struct {
	Invoice
	Items []Item `json:"items"`
}

// CreateInvoiceRequest is the payload for creating an invoice. Items listed
// in ItemIDs are attached in the same transaction as the insert.
type CreateInvoiceRequest struct {
	PersonID  string   `json:"user_id"    validate:"required"`
	Total     float64  `json:"total"      validate:"gte=0,lte=9999999999.99"`
	Paid      bool     `json:"paid"`
	ItemIDs   []string `json:"item_ids"   validate:"omitempty,max=100,dive,required"`
	CreatedBy string   `json:"created_by" validate:"omitempty,max=100"`
}

type UpdateInvoiceRequest struct {
	ID        string  `json:"id"         validate:"required"`
	Total     float64 `json:"total"      validate:"gte=0,lte=9999999999.99"`
	Paid      bool    `json:"paid"`
	ChangedBy string  `json:"changed_by" validate:"omitempty,max=100"`
}

// AddInvoiceItemRequest attaches an existing item to an invoice.
type AddInvoiceItemRequest struct {
	ItemID    string `json:"item_id"    validate:"required"`
	ChangedBy string `json:"changed_by" validate:"omitempty,max=100"`
}

// InvoiceItem is one invoice/item association.
type InvoiceItem struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	ItemID    uuid.UUID `json:"item_id"`
}
