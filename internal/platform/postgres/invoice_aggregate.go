package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/redact"
	"github.com/phrazzld/inventory-api/internal/store"
)

// invoiceItemJoinRow is one row of the invoice/item join: invoice columns
// repeated on every row, item columns prefixed with item_.
type invoiceItemJoinRow struct {
	store.InvoiceRow

	ItemSeq           int64     `db:"item_seq"`
	ItemAltID         uuid.UUID `db:"item_alt_id"`
	ItemName          string    `db:"item_name"`
	ItemDescription   string    `db:"item_description"`
	ItemUnitPrice     float64   `db:"item_unit_price"`
	ItemCreatedBy     string    `db:"item_created_by"`
	ItemCreatedAt     time.Time `db:"item_created_at"`
	ItemLastChangedBy string    `db:"item_last_changed_by"`
	ItemLastUpdate    time.Time `db:"item_last_update"`
}

const invoiceWithItemsQuery = `
	SELECT
		inv.id, inv.alt_id, inv.user_id, inv.total, inv.paid,
		inv.created_by, inv.created_at, inv.last_changed_by, inv.last_update,
		it.id AS item_seq, it.alt_id AS item_alt_id, it.name AS item_name,
		it.description AS item_description, it.unit_price AS item_unit_price,
		it.created_by AS item_created_by, it.created_at AS item_created_at,
		it.last_changed_by AS item_last_changed_by, it.last_update AS item_last_update
	FROM invoices inv
	JOIN invoices_items ii ON ii.invoice_id = inv.alt_id
	JOIN items it ON it.alt_id = ii.item_id
	WHERE inv.alt_id = $1
	ORDER BY it.id ASC`

// GetWithItems implements store.InvoiceStore.GetWithItems.
//
// The join yields one row per attached item, so an invoice without items
// produces no rows at all. In that case the invoice table is consulted on its
// own to tell an empty invoice apart from a missing one.
func (s *PostgresInvoiceStore) GetWithItems(ctx context.Context, id string) (*store.InvoiceAggregate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("invoice", id)
	if err != nil {
		return nil, err
	}

	var rows []invoiceItemJoinRow
	if err := s.db.SelectContext(ctx, &rows, invoiceWithItemsQuery, altID); err != nil {
		log.Error("failed to load invoice with items",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", id))
		return nil, MapError(err)
	}

	if len(rows) == 0 {
		invoice, err := s.getByAltID(ctx, altID)
		if err != nil {
			return nil, err
		}
		log.Debug("invoice has no items", slog.String("invoice_id", id))
		return &store.InvoiceAggregate{Invoice: *invoice, Items: []store.ItemRow{}}, nil
	}

	return foldInvoiceItems(rows), nil
}

// foldInvoiceItems reshapes a non-empty join result into an aggregate,
// reading invoice columns from the first row and one item from every row.
func foldInvoiceItems(rows []invoiceItemJoinRow) *store.InvoiceAggregate {
	agg := &store.InvoiceAggregate{
		Invoice: rows[0].InvoiceRow,
		Items:   make([]store.ItemRow, 0, len(rows)),
	}
	for _, r := range rows {
		agg.Items = append(agg.Items, store.ItemRow{
			ID:          r.ItemSeq,
			AltID:       r.ItemAltID,
			Name:        r.ItemName,
			Description: r.ItemDescription,
			UnitPrice:   r.ItemUnitPrice,
			Audit: store.Audit{
				CreatedBy:     r.ItemCreatedBy,
				CreatedAt:     r.ItemCreatedAt,
				LastChangedBy: r.ItemLastChangedBy,
				LastUpdate:    r.ItemLastUpdate,
			},
		})
	}
	return agg
}

func (s *PostgresInvoiceStore) mapReadError(ctx context.Context, err error, attr slog.Attr) error {
	mapped := mapEntityError(err, store.ErrInvoiceNotFound, store.ErrUniqueViolation)
	if store.KindOf(mapped) == store.KindOther {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get invoice",
			slog.String("error", redact.Error(err)), attr)
	}
	return mapped
}
