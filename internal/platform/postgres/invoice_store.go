package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/redact"
	"github.com/phrazzld/inventory-api/internal/store"
)

const invoiceColumns = `id, alt_id, user_id, total, paid, created_by, created_at, last_changed_by, last_update`

// PostgresInvoiceStore implements the store.InvoiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresInvoiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInvoiceStore creates a new PostgreSQL implementation of the InvoiceStore interface.
func NewPostgresInvoiceStore(db store.DBTX, logger *slog.Logger) *PostgresInvoiceStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInvoiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "invoice_store")),
	}
}

var _ store.InvoiceStore = (*PostgresInvoiceStore)(nil)

// WithTx implements store.InvoiceStore.WithTx
func (s *PostgresInvoiceStore) WithTx(tx *sqlx.Tx) store.InvoiceStore {
	return &PostgresInvoiceStore{db: tx, logger: s.logger}
}

// Create implements store.InvoiceStore.Create
func (s *PostgresInvoiceStore) Create(ctx context.Context, inv store.NewInvoice) (*store.InvoiceRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personID, err := store.ParseExternalID("person", inv.PersonID)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO invoices (alt_id, user_id, total, paid, created_by, created_at, last_changed_by, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		RETURNING ` + invoiceColumns

	var row store.InvoiceRow
	err = s.db.GetContext(ctx, &row, query,
		uuid.New(), personID, inv.Total, inv.Paid, inv.CreatedBy, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("invoice references unknown person", slog.String("person_id", inv.PersonID))
			return nil, fmt.Errorf("%w: %v", store.ErrPersonNotFound, err)
		}
		log.Error("failed to create invoice",
			slog.String("error", redact.Error(err)),
			slog.String("person_id", inv.PersonID))
		return nil, MapError(err)
	}

	log.Info("invoice created",
		slog.String("invoice_id", row.AltID.String()),
		slog.String("person_id", inv.PersonID))
	return &row, nil
}

// GetBySequenceID implements store.InvoiceStore.GetBySequenceID
func (s *PostgresInvoiceStore) GetBySequenceID(ctx context.Context, seq int64) (*store.InvoiceRow, error) {
	var row store.InvoiceRow
	err := s.db.GetContext(ctx, &row, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, seq)
	if err != nil {
		return nil, s.mapReadError(ctx, err, slog.Int64("seq", seq))
	}
	return &row, nil
}

// GetByExternalID implements store.InvoiceStore.GetByExternalID
func (s *PostgresInvoiceStore) GetByExternalID(ctx context.Context, id string) (*store.InvoiceRow, error) {
	altID, err := store.ParseExternalID("invoice", id)
	if err != nil {
		return nil, err
	}
	return s.getByAltID(ctx, altID)
}

func (s *PostgresInvoiceStore) getByAltID(ctx context.Context, altID uuid.UUID) (*store.InvoiceRow, error) {
	var row store.InvoiceRow
	err := s.db.GetContext(ctx, &row, `SELECT `+invoiceColumns+` FROM invoices WHERE alt_id = $1`, altID)
	if err != nil {
		return nil, s.mapReadError(ctx, err, slog.String("invoice_id", altID.String()))
	}
	return &row, nil
}

// ListPage implements store.InvoiceStore.ListPage
func (s *PostgresInvoiceStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.InvoiceRow, error) {
	rows, err := listPage[store.InvoiceRow](ctx, s.db, "invoices", invoiceColumns, cursor)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list invoices",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return rows, nil
}

// ListByPerson implements store.InvoiceStore.ListByPerson
func (s *PostgresInvoiceStore) ListByPerson(ctx context.Context, personID string) ([]store.InvoiceRow, error) {
	altID, err := store.ParseExternalID("person", personID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY id ASC`

	rows := []store.InvoiceRow{}
	if err := s.db.SelectContext(ctx, &rows, query, altID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list invoices for person",
			slog.String("error", redact.Error(err)),
			slog.String("person_id", personID))
		return nil, MapError(err)
	}
	return rows, nil
}

// Update implements store.InvoiceStore.Update
func (s *PostgresInvoiceStore) Update(ctx context.Context, id string, upd store.InvoiceUpdate) (*store.InvoiceRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("invoice", id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE invoices
		SET total = $1, paid = $2, last_changed_by = $3, last_update = $4
		WHERE alt_id = $5
		RETURNING ` + invoiceColumns

	var row store.InvoiceRow
	err = s.db.GetContext(ctx, &row, query, upd.Total, upd.Paid, upd.ChangedBy, time.Now().UTC(), altID)
	if err != nil {
		mapped := mapEntityError(err, store.ErrInvoiceNotFound, store.ErrUniqueViolation)
		if store.KindOf(mapped) == store.KindOther {
			log.Error("failed to update invoice",
				slog.String("error", redact.Error(err)),
				slog.String("invoice_id", id))
		}
		return nil, mapped
	}

	log.Info("invoice updated", slog.String("invoice_id", id))
	return &row, nil
}

// Delete implements store.InvoiceStore.Delete
func (s *PostgresInvoiceStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("invoice", id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE alt_id = $1`, altID)
	if err != nil {
		log.Error("failed to delete invoice",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrInvoiceNotFound); err != nil {
		return err
	}

	log.Info("invoice deleted", slog.String("invoice_id", id))
	return nil
}

// AddItem implements store.InvoiceStore.AddItem. The audit stamp on the
// invoice and the association insert run as one statement; a missing
// invoice yields no row and a missing item trips the foreign key.
func (s *PostgresInvoiceStore) AddItem(
	ctx context.Context,
	invoiceID, itemID, actor string,
) (*store.InvoiceItemRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	invoiceAltID, err := store.ParseExternalID("invoice", invoiceID)
	if err != nil {
		return nil, err
	}
	itemAltID, err := store.ParseExternalID("item", itemID)
	if err != nil {
		return nil, err
	}

	query := `
		WITH touched AS (
			UPDATE invoices
			SET last_changed_by = $3, last_update = $4
			WHERE alt_id = $1
			RETURNING alt_id
		)
		INSERT INTO invoices_items (invoice_id, item_id)
		SELECT alt_id, $2::uuid FROM touched
		RETURNING invoice_id, item_id`

	var row store.InvoiceItemRow
	err = s.db.GetContext(ctx, &row, query, invoiceAltID, itemAltID, actor, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %v", store.ErrItemNotFound, err)
		}
		mapped := mapEntityError(err, store.ErrInvoiceNotFound, store.ErrInvoiceItemExists)
		if store.KindOf(mapped) == store.KindOther {
			log.Error("failed to add item to invoice",
				slog.String("error", redact.Error(err)),
				slog.String("invoice_id", invoiceID),
				slog.String("item_id", itemID))
		}
		return nil, mapped
	}

	log.Info("item added to invoice",
		slog.String("invoice_id", invoiceID),
		slog.String("item_id", itemID))
	return &row, nil
}

// RemoveItem implements store.InvoiceStore.RemoveItem
func (s *PostgresInvoiceStore) RemoveItem(ctx context.Context, invoiceID, itemID, actor string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	invoiceAltID, err := store.ParseExternalID("invoice", invoiceID)
	if err != nil {
		return err
	}
	itemAltID, err := store.ParseExternalID("item", itemID)
	if err != nil {
		return err
	}

	query := `
		WITH removed AS (
			DELETE FROM invoices_items
			WHERE invoice_id = $1 AND item_id = $2
			RETURNING invoice_id
		)
		UPDATE invoices
		SET last_changed_by = $3, last_update = $4
		WHERE alt_id IN (SELECT invoice_id FROM removed)`

	result, err := s.db.ExecContext(ctx, query, invoiceAltID, itemAltID, actor, time.Now().UTC())
	if err != nil {
		log.Error("failed to remove item from invoice",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", invoiceID),
			slog.String("item_id", itemID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrInvoiceItemNotFound); err != nil {
		return err
	}

	log.Info("item removed from invoice",
		slog.String("invoice_id", invoiceID),
		slog.String("item_id", itemID))
	return nil
}
