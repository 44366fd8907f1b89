package domain

import "github.com/google/uuid"

// Item is a product that can be attached to invoices.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Seq         int64     `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   float64   `json:"unit_price"`
	Audit
}

type CreateItemRequest struct {
	Name        string  `json:"name"        validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"max=500"`
	UnitPrice   float64 `json:"unit_price"  validate:"gte=0,lte=9999999999.99"`
	CreatedBy   string  `json:"created_by"  validate:"omitempty,max=100"`
}

type UpdateItemRequest struct {
	ID          string  `json:"id"          validate:"required"`
	Name        string  `json:"name"        validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"max=500"`
	UnitPrice   float64 `json:"unit_price"  validate:"gte=0,lte=9999999999.99"`
	ChangedBy   string  `json:"changed_by"  validate:"omitempty,max=100"`
}
