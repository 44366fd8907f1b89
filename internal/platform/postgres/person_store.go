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

const personColumns = `id, alt_id, name, email, created_by, created_at, last_changed_by, last_update`

// PostgresPersonStore implements the store.PersonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPersonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonStore creates a new PostgreSQL implementation of the PersonStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPersonStore(db store.DBTX, logger *slog.Logger) *PostgresPersonStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPersonStore{
		db:     db,
		logger: logger.With(slog.String("component", "person_store")),
	}
}

// Ensure PostgresPersonStore implements store.PersonStore interface
var _ store.PersonStore = (*PostgresPersonStore)(nil)

// WithTx implements store.PersonStore.WithTx
func (s *PostgresPersonStore) WithTx(tx *sqlx.Tx) store.PersonStore {
	return &PostgresPersonStore{db: tx, logger: s.logger}
}

// Create implements store.PersonStore.Create
func (s *PostgresPersonStore) Create(ctx context.Context, p store.NewPerson) (*store.PersonRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := `
		INSERT INTO persons (alt_id, name, email, created_by, created_at, last_changed_by, last_update)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		RETURNING ` + personColumns

	var row store.PersonRow
	err := s.db.GetContext(ctx, &row, query, uuid.New(), p.Name, p.Email, p.CreatedBy, now)
	if err != nil {
		mapped := mapEntityError(err, store.ErrPersonNotFound, store.ErrEmailExists)
		if store.KindOf(mapped) == store.KindUniqueViolation {
			log.Debug("person email already exists")
		} else {
			log.Error("failed to create person", slog.String("error", redact.Error(err)))
		}
		return nil, mapped
	}

	log.Info("person created", slog.String("person_id", row.AltID.String()))
	return &row, nil
}

// GetBySequenceID implements store.PersonStore.GetBySequenceID
func (s *PostgresPersonStore) GetBySequenceID(ctx context.Context, seq int64) (*store.PersonRow, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`

	var row store.PersonRow
	if err := s.db.GetContext(ctx, &row, query, seq); err != nil {
		return nil, s.mapReadError(ctx, err, slog.Int64("seq", seq))
	}
	return &row, nil
}

// GetByExternalID implements store.PersonStore.GetByExternalID
func (s *PostgresPersonStore) GetByExternalID(ctx context.Context, id string) (*store.PersonRow, error) {
	altID, err := store.ParseExternalID("person", id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + personColumns + ` FROM persons WHERE alt_id = $1`

	var row store.PersonRow
	if err := s.db.GetContext(ctx, &row, query, altID); err != nil {
		return nil, s.mapReadError(ctx, err, slog.String("person_id", id))
	}
	return &row, nil
}

// ListPage implements store.PersonStore.ListPage
func (s *PostgresPersonStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.PersonRow, error) {
	rows, err := listPage[store.PersonRow](ctx, s.db, "persons", personColumns, cursor)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list persons",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return rows, nil
}

// Update implements store.PersonStore.Update
func (s *PostgresPersonStore) Update(ctx context.Context, id string, upd store.PersonUpdate) (*store.PersonRow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("person", id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE persons
		SET name = $1, email = $2, last_changed_by = $3, last_update = $4
		WHERE alt_id = $5
		RETURNING ` + personColumns

	var row store.PersonRow
	err = s.db.GetContext(ctx, &row, query, upd.Name, upd.Email, upd.ChangedBy, time.Now().UTC(), altID)
	if err != nil {
		mapped := mapEntityError(err, store.ErrPersonNotFound, store.ErrEmailExists)
		if store.KindOf(mapped) == store.KindOther {
			log.Error("failed to update person",
				slog.String("error", redact.Error(err)),
				slog.String("person_id", id))
		}
		return nil, mapped
	}

	log.Info("person updated", slog.String("person_id", id))
	return &row, nil
}

// Delete implements store.PersonStore.Delete
func (s *PostgresPersonStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	altID, err := store.ParseExternalID("person", id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE alt_id = $1`, altID)
	if err != nil {
		log.Error("failed to delete person",
			slog.String("error", redact.Error(err)),
			slog.String("person_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPersonNotFound); err != nil {
		return err
	}

	log.Info("person deleted", slog.String("person_id", id))
	return nil
}

func (s *PostgresPersonStore) mapReadError(ctx context.Context, err error, attr slog.Attr) error {
	mapped := mapEntityError(err, store.ErrPersonNotFound, store.ErrEmailExists)
	if store.KindOf(mapped) == store.KindOther {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get person",
			slog.String("error", redact.Error(err)), attr)
	}
	return mapped
}
