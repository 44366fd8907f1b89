package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Person is a customer who can own invoices.
type Person struct {
	ID    uuid.UUID `json:"id"`
	Seq   int64     `json:"-"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Audit
}

// CreatePersonRequest is the payload for creating a person.
// CreatedBy falls back to the authenticated subject when empty.
type CreatePersonRequest struct {
	Name      string `json:"name"       validate:"required,min=3,max=50"`
	Email     string `json:"email"      validate:"required,email,max=254"`
	CreatedBy string `json:"created_by" validate:"omitempty,max=100"`
}

// UpdatePersonRequest is the payload for replacing a person's fields.
// ID must match the id in the request path.
type UpdatePersonRequest struct {
	ID        string `json:"id"         validate:"required"`
	Name      string `json:"name"       validate:"required,min=3,max=50"`
	Email     string `json:"email"      validate:"required,email,max=254"`
	ChangedBy string `json:"changed_by" validate:"omitempty,max=100"`
}

// NormalizeEmail trims and lower-cases an address so that uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
