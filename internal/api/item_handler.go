package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service"
)

// ItemHandler handles /items requests.
type ItemHandler struct {
	items  service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items service.ItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}
	return &ItemHandler{
		items:  items,
		logger: logger.With(slog.String("component", "item_handler")),
	}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, err := parseCursor(r, "list_items")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := h.items.ListItems(r.Context(), claimsFrom(r), cursor)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.GetItem(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateItemRequest
	if err := decodeBody(w, r, "create_item", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	item, err := h.items.CreateItem(r.Context(), claimsFrom(r), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateItemRequest
	if err := decodeBody(w, r, "update_item", &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	item, err := h.items.UpdateItem(r.Context(), claimsFrom(r), pathID(r, "id"), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.items.DeleteItem(r.Context(), claimsFrom(r), pathID(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("item deleted", slog.String("id", res.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}
