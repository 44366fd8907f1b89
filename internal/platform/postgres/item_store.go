package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/redact"
	"github.com/phrazzld/inventory-api/internal/store"
)

const itemColumns = `id, alt_id, name, description, unit_price, created_by, created_at, last_changed_by, last_update`

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

var _ store.ItemStore = (*PostgresItemStore)(nil)

// WithTx implements store.ItemStore.WithTx
func (s *PostgresItemStore) WithTx(tx *sqlx.Tx) store.ItemStore {
	return &PostgresItemStore{db: tx, logger: s.logger}
}

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, it store.NewItem) (*store.ItemRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO items (alt_id, name, description, unit_price, created_by, created_at, last_changed_by, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		RETURNING ` + itemColumns

	var row store.ItemRow
	err := s.db.GetContext(ctx, &row, query,
		uuid.New(), it.Name, it.Description, it.UnitPrice, it.CreatedBy, time.Now().UTC())
	if err != nil {
		log.Error("failed to create item", slog.String("error", redact.Error(err)))
		return nil, mapEntityError(err, store.ErrItemNotFound, store.ErrUniqueViolation)
	}

	log.Info("item created", slog.String("item_id", row.AltID.String()))
	return &row, nil
}

// GetBySequenceID implements store.ItemStore.GetBySequenceID
func (s *PostgresItemStore) GetBySequenceID(ctx context.Context, seq int64) (*store.ItemRow, error) {
	var row store.ItemRow
	err := s.db.GetContext(ctx, &row, `SELECT `+itemColumns+` FROM items WHERE id = $1`, seq)
	if err != nil {
		return nil, s.mapReadError(ctx, err, slog.Int64("seq", seq))
	}
	return &row, nil
}

// GetByExternalID implements store.ItemStore.GetByExternalID
func (s *PostgresItemStore) GetByExternalID(ctx context.Context, id string) (*store.ItemRow, error) {
	altID, err := store.ParseExternalID("item", id)
	if err != nil {
		return nil, err
	}

	var row store.ItemRow
	err = s.db.GetContext(ctx, &row, `SELECT `+itemColumns+` FROM items WHERE alt_id = $1`, altID)
	if err != nil {
		return nil, s.mapReadError(ctx, err, slog.String("item_id", id))
	}
	return &row, nil
}

// ListPage implements store.ItemStore.ListPage
func (s *PostgresItemStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.ItemRow, error) {
	rows, err := listPage[store.ItemRow](ctx, s.db, "items", itemColumns, cursor)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list items",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return rows, nil
}

// Update implements store.ItemStore.Update
func (s *PostgresItemStore) Update(ctx context.Context, id string, upd store.ItemUpdate) (*store.ItemRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("item", id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE items
		SET name = $1, description = $2, unit_price = $3, last_changed_by = $4, last_update = $5
		WHERE alt_id = $6
		RETURNING ` + itemColumns

	var row store.ItemRow
	err = s.db.GetContext(ctx, &row, query,
		upd.Name, upd.Description, upd.UnitPrice, upd.ChangedBy, time.Now().UTC(), altID)
	if err != nil {
		mapped := mapEntityError(err, store.ErrItemNotFound, store.ErrUniqueViolation)
		if store.KindOf(mapped) == store.KindOther {
			log.Error("failed to update item",
				slog.String("error", redact.Error(err)),
				slog.String("item_id", id))
		}
		return nil, mapped
	}

	log.Info("item updated", slog.String("item_id", id))
	return &row, nil
}

// Delete implements store.ItemStore.Delete. Associations to invoices are
// removed by the foreign key cascade.
func (s *PostgresItemStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("item", id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE alt_id = $1`, altID)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", redact.Error(err)),
			slog.String("item_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrItemNotFound); err != nil {
		return err
	}

	log.Info("item deleted", slog.String("item_id", id))
	return nil
}

func (s *PostgresItemStore) mapReadError(ctx context.Context, err error, attr slog.Attr) error {
	mapped := mapEntityError(err, store.ErrItemNotFound, store.ErrUniqueViolation)
	if store.KindOf(mapped) == store.KindOther {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get item",
			slog.String("error", redact.Error(err)), attr)
	}
	return mapped
}
