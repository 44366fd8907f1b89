package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the resource handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth     *AuthHandler
	Persons  *PersonHandler
	Items    *ItemHandler
	Invoices *InvoiceHandler
}

// RegisterRoutes mounts POST /auth publicly and every resource route behind
// authenticate.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Post("/auth", h.Auth.Token)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/persons", func(r chi.Router) {
			r.Get("/", h.Persons.List)
			r.Post("/", h.Persons.Create)
			r.Get("/{id}", h.Persons.Get)
			r.Put("/{id}", h.Persons.Update)
			r.Delete("/{id}", h.Persons.Delete)
			r.Get("/{id}/invoices", h.Persons.ListInvoices)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.Items.List)
			r.Post("/", h.Items.Create)
			r.Get("/{id}", h.Items.Get)
			r.Put("/{id}", h.Items.Update)
			r.Delete("/{id}", h.Items.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.Invoices.List)
			r.Post("/", h.Invoices.Create)
			r.Get("/{id}", h.Invoices.Get)
			r.Put("/{id}", h.Invoices.Update)
			r.Delete("/{id}", h.Invoices.Delete)
			r.Post("/{id}/items", h.Invoices.AddItem)
			r.Delete("/{id}/items/{item_id}", h.Invoices.RemoveItem)
		})
	})
}
