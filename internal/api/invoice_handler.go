package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service"
)

// InvoiceHandler handles /invoices requests, including the item sub-resource.
type InvoiceHandler struct {
	invoices service.InvoiceService
	logger   *slog.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices service.InvoiceService, logger *slog.Logger) *InvoiceHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for InvoiceHandler")
	}
	return &InvoiceHandler{
		invoices: invoices,
		logger:   logger.With(slog.String("component", "invoice_handler")),
	}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, err := parseCursor(r, "list_invoices")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := h.invoices.ListInvoices(r.Context(), claimsFrom(r), cursor)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /invoices/{id}. With ?with_items=true the body includes
// an items array, empty when nothing is attached.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	withItems, err := parseBoolQuery(r, "with_items", "get_invoice")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	inv, err := h.invoices.GetInvoice(r.Context(), claimsFrom(r), pathID(r, "id"), withItems)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if !withItems {
		shared.RespondWithJSON(w, r, http.StatusOK, inv.Invoice)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, inv)
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := decodeBody(w, r, "create_invoice", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	inv, err := h.invoices.CreateInvoice(r.Context(), claimsFrom(r), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, inv)
}

// Update handles PUT /invoices/{id}.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateInvoiceRequest
	if err := decodeBody(w, r, "update_invoice", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	inv, err := h.invoices.UpdateInvoice(r.Context(), claimsFrom(r), pathID(r, "id"), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, inv)
}

// Delete handles DELETE /invoices/{id}.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.invoices.DeleteInvoice(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("invoice deleted", slog.String("id", res.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// AddItem handles POST /invoices/{id}/items.
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddInvoiceItemRequest
	if err := decodeBody(w, r, "add_invoice_item", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	pair, err := h.invoices.AddItem(r.Context(), claimsFrom(r), pathID(r, "id"), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, pair)
}

// RemoveItem handles DELETE /invoices/{id}/items/{item_id}.
func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.invoices.RemoveItem(r.Context(), claimsFrom(r), pathID(r, "id"), pathID(r, "item_id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}
