package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service"
)

// PersonHandler handles /persons requests.
type PersonHandler struct {
	persons  service.PersonService
	invoices service.InvoiceService
	logger   *slog.Logger
}

// NewPersonHandler creates a new PersonHandler. invoices serves
// GET /persons/{id}/invoices.
func NewPersonHandler(persons service.PersonService, invoices service.InvoiceService, logger *slog.Logger) *PersonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PersonHandler")
	}
	return &PersonHandler{
		persons:  persons,
		invoices: invoices,
		logger:   logger.With(slog.String("component", "person_handler")),
	}
}

// List handles GET /persons.
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, err := parseCursor(r, "list_persons")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := h.persons.ListPersons(r.Context(), claimsFrom(r), cursor)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /persons/{id}.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	person, err := h.persons.GetPerson(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, person)
}

// Create handles POST /persons.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePersonRequest
	if err := decodeBody(w, r, "create_person", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	person, err := h.persons.CreatePerson(r.Context(), claimsFrom(r), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, person)
}

// Update handles PUT /persons/{id}.
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePersonRequest
	if err := decodeBody(w, r, "update_person", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	person, err := h.persons.UpdatePerson(r.Context(), claimsFrom(r), pathID(r, "id"), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, person)
}

// Delete handles DELETE /persons/{id}.
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.persons.DeletePerson(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("person deleted", slog.String("id", res.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// ListInvoices handles GET /persons/{id}/invoices.
func (h *PersonHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.ListInvoicesForPerson(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, invoices)
}
