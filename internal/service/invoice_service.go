package service

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

// InvoiceService provides invoice operations, including the invoice/item
// association, to the HTTP layer.
type InvoiceService interface {
	ListInvoices(ctx context.Context, claims auth.Claims, cursor *store.Cursor) (*domain.Page[domain.Invoice], error)

	// GetInvoice returns the invoice; its Items are loaded only when withItems is set.
	GetInvoice(ctx context.Context, claims auth.Claims, id string, withItems bool) (*domain.InvoiceWithItems, error)

	// ListInvoicesForPerson returns every invoice of an existing person.
	ListInvoicesForPerson(ctx context.Context, claims auth.Claims, personID string) ([]domain.Invoice, error)

	// CreateInvoice inserts the invoice and attaches req.ItemIDs atomically.
	CreateInvoice(ctx context.Context, claims auth.Claims, req domain.CreateInvoiceRequest) (*domain.InvoiceWithItems, error)

	UpdateInvoice(ctx context.Context, claims auth.Claims, pathID string, req domain.UpdateInvoiceRequest) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, claims auth.Claims, id string) (*domain.DeleteResult, error)
	AddItem(ctx context.Context, claims auth.Claims, invoiceID string, req domain.AddInvoiceItemRequest) (*domain.InvoiceItem, error)
	RemoveItem(ctx context.Context, claims auth.Claims, invoiceID, itemID string) (*domain.DeleteResult, error)
}

type invoiceService struct {
	invoices store.InvoiceStore
	persons  store.PersonStore
	db       *sqlx.DB
	logger   *slog.Logger
}

// NewInvoiceService creates an InvoiceService. db is used to open the
// transaction in which an invoice and its initial items are written.
func NewInvoiceService(
	invoices store.InvoiceStore,
	persons store.PersonStore,
	db *sqlx.DB,
	logger *slog.Logger,
) InvoiceService {
	if invoices == nil || persons == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("invoice and person stores cannot be nil")
	}
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceService{
		invoices: invoices,
		persons:  persons,
		db:       db,
		logger:   logger.With(slog.String("component", "invoice_service")),
	}
}

func (s *invoiceService) fail(ctx context.Context, operation string, err error) error {
	svcErr := FromStore(operation, err)
	logFailure(ctx, s.logger, operation, svcErr)
	return svcErr
}

func (s *invoiceService) ListInvoices(
	ctx context.Context,
	_ auth.Claims,
	cursor *store.Cursor,
) (*domain.Page[domain.Invoice], error) {
	const op = "list_invoices"
	if err := checkCursor(op, cursor); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	resolved := store.Resolve(cursor)
	rows, err := s.invoices.ListPage(ctx, &resolved)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	page := domain.NewPage(mapRows(rows, invoiceFromRow), resolved.PageSize, invoiceSeq)
	return &page, nil
}

func (s *invoiceService) GetInvoice(
	ctx context.Context,
	_ auth.Claims,
	id string,
	withItems bool,
) (*domain.InvoiceWithItems, error) {
	const op = "get_invoice"
	if !withItems {
		row, err := s.invoices.GetByExternalID(ctx, id)
		if err != nil {
			return nil, s.fail(ctx, op, err)
		}
		return &domain.InvoiceWithItems{Invoice: invoiceFromRow(*row)}, nil
	}

	agg, err := s.invoices.GetWithItems(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	inv := invoiceFromAggregate(*agg)
	return &inv, nil
}

func (s *invoiceService) ListInvoicesForPerson(
	ctx context.Context,
	_ auth.Claims,
	personID string,
) ([]domain.Invoice, error) {
	const op = "list_invoices_for_person"
	if _, err := s.persons.GetByExternalID(ctx, personID); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	rows, err := s.invoices.ListByPerson(ctx, personID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return mapRows(rows, invoiceFromRow), nil
}

func (s *invoiceService) CreateInvoice(
	ctx context.Context,
	claims auth.Claims,
	req domain.CreateInvoiceRequest,
) (*domain.InvoiceWithItems, error) {
	const op = "create_invoice"
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	who := actor(claims, req.CreatedBy)
	newInvoice := store.NewInvoice{
		PersonID:  req.PersonID,
		Total:     req.Total,
		Paid:      req.Paid,
		CreatedBy: who,
	}

	if len(req.ItemIDs) == 0 {
		row, err := s.invoices.Create(ctx, newInvoice)
		if err != nil {
			return nil, s.fail(ctx, op, err)
		}
		return &domain.InvoiceWithItems{Invoice: invoiceFromRow(*row), Items: []domain.Item{}}, nil
	}

	var agg *store.InvoiceAggregate
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		txInvoices := s.invoices.WithTx(tx)

		row, err := txInvoices.Create(ctx, newInvoice)
		if err != nil {
			return err
		}
		invoiceID := row.AltID.String()
		for _, itemID := range req.ItemIDs {
			if _, err := txInvoices.AddItem(ctx, invoiceID, itemID, who); err != nil {
				return err
			}
		}

		agg, err = txInvoices.GetWithItems(ctx, invoiceID)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("invoice created with items",
		slog.String("invoice_id", agg.Invoice.AltID.String()),
		slog.Int("item_count", len(agg.Items)))
	inv := invoiceFromAggregate(*agg)
	return &inv, nil
}

func (s *invoiceService) UpdateInvoice(
	ctx context.Context,
	claims auth.Claims,
	pathID string,
	req domain.UpdateInvoiceRequest,
) (*domain.Invoice, error) {
	const op = "update_invoice"
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if err := checkPathID(op, pathID, req.ID); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.invoices.Update(ctx, pathID, store.InvoiceUpdate{
		Total:     req.Total,
		Paid:      req.Paid,
		ChangedBy: actor(claims, req.ChangedBy),
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	inv := invoiceFromRow(*row)
	return &inv, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, _ auth.Claims, id string) (*domain.DeleteResult, error) {
	if err := s.invoices.Delete(ctx, id); err != nil {
		return nil, s.fail(ctx, "delete_invoice", err)
	}
	return &domain.DeleteResult{ID: id, Deleted: true}, nil
}

func (s *invoiceService) AddItem(
	ctx context.Context,
	claims auth.Claims,
	invoiceID string,
	req domain.AddInvoiceItemRequest,
) (*domain.InvoiceItem, error) {
	const op = "add_invoice_item"
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.invoices.AddItem(ctx, invoiceID, req.ItemID, actor(claims, req.ChangedBy))
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return &domain.InvoiceItem{InvoiceID: row.InvoiceID, ItemID: row.ItemID}, nil
}

func (s *invoiceService) RemoveItem(
	ctx context.Context,
	claims auth.Claims,
	invoiceID, itemID string,
) (*domain.DeleteResult, error) {
	if err := s.invoices.RemoveItem(ctx, invoiceID, itemID, claims.Subject); err != nil {
		return nil, s.fail(ctx, "remove_invoice_item", err)
	}
	return &domain.DeleteResult{ID: itemID, Deleted: true}, nil
}
