package postgres

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joinCols = append(append([]string{}, invoiceCols...),
	"item_seq", "item_alt_id", "item_name", "item_description", "item_unit_price",
	"item_created_by", "item_created_at", "item_last_changed_by", "item_last_update")

func joinRow(itemSeq int64, itemAltID, name string, price float64) []driver.Value {
	return append(invoiceRow(5, invoiceID, 30, false),
		itemSeq, itemAltID, name, "desc", price, "alice", fixedTime, "alice", fixedTime)
}

func TestInvoiceStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
			WithArgs(sqlmock.AnyArg(), personID, 30.0, false, "alice", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(invoiceCols).AddRow(invoiceRow(5, invoiceID, 30, false)...))

		row, err := s.Create(context.Background(), store.NewInvoice{
			PersonID: personID, Total: 30, CreatedBy: "alice",
		})
		require.NoError(t, err)
		assert.Equal(t, invoiceID, row.AltID.String())
		assert.Equal(t, personID, row.UserID.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown person", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "invoices_user_id_fkey"})

		_, err := s.Create(context.Background(), store.NewInvoice{PersonID: personID, CreatedBy: "alice"})
		assert.ErrorIs(t, err, store.ErrPersonNotFound)
		assert.Equal(t, store.KindNotFound, store.KindOf(err))
	})

	t.Run("malformed person id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		_, err := s.Create(context.Background(), store.NewInvoice{PersonID: "7"})
		assert.ErrorIs(t, err, store.ErrInvalidIdentifier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvoiceStore_GetBySequenceID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		wantErr error
	}{
		{"found", sqlmock.NewRows(invoiceCols).AddRow(invoiceRow(5, invoiceID, 30, true)...), nil},
		{"not found", sqlmock.NewRows(invoiceCols), store.ErrInvoiceNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			s := NewPostgresInvoiceStore(db, nil)

			mock.ExpectQuery(regexp.QuoteMeta("FROM invoices WHERE id = $1")).
				WithArgs(int64(5)).
				WillReturnRows(tt.rows)

			row, err := s.GetBySequenceID(context.Background(), 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, store.KindNotFound, store.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), row.ID)
			assert.Equal(t, invoiceID, row.AltID.String())
			assert.True(t, row.Paid)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvoiceStore_ListByPerson(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresInvoiceStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices WHERE user_id = $1 ORDER BY id ASC")).
		WithArgs(personID).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(invoiceRow(1, invoiceID, 10, true)...).
			AddRow(invoiceRow(3, itemID2, 20, false)...))

	rows, err := s.ListByPerson(context.Background(), personID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Less(t, rows[0].ID, rows[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceStore_GetWithItems(t *testing.T) {
	t.Parallel()

	t.Run("folds one item per row", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN invoices_items ii ON ii.invoice_id = inv.alt_id")).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows(joinCols).
				AddRow(joinRow(1, itemID, "Widget", 10)...).
				AddRow(joinRow(2, itemID2, "Gadget", 20)...))

		agg, err := s.GetWithItems(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.Equal(t, invoiceID, agg.Invoice.AltID.String())
		require.Len(t, agg.Items, 2)
		assert.Equal(t, itemID, agg.Items[0].AltID.String())
		assert.Equal(t, "Gadget", agg.Items[1].Name)
		assert.Equal(t, int64(2), agg.Items[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invoice without items", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN invoices_items")).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows(joinCols))
		mock.ExpectQuery(regexp.QuoteMeta("FROM invoices WHERE alt_id = $1")).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows(invoiceCols).AddRow(invoiceRow(5, invoiceID, 0, false)...))

		agg, err := s.GetWithItems(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.NotNil(t, agg.Items)
		assert.Empty(t, agg.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing invoice", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN invoices_items")).
			WillReturnRows(sqlmock.NewRows(joinCols))
		mock.ExpectQuery(regexp.QuoteMeta("FROM invoices WHERE alt_id = $1")).
			WillReturnRows(sqlmock.NewRows(invoiceCols))

		_, err := s.GetWithItems(context.Background(), invoiceID)
		assert.ErrorIs(t, err, store.ErrInvoiceNotFound)
	})
}

func TestInvoiceStore_AddItem(t *testing.T) {
	t.Parallel()

	t.Run("attached", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices_items (invoice_id, item_id)")).
			WithArgs(invoiceID, itemID, "bob", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "item_id"}).AddRow(invoiceID, itemID))

		row, err := s.AddItem(context.Background(), invoiceID, itemID, "bob")
		require.NoError(t, err)
		assert.Equal(t, invoiceID, row.InvoiceID.String())
		assert.Equal(t, itemID, row.ItemID.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already attached", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices_items")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "invoices_items_pkey"})

		_, err := s.AddItem(context.Background(), invoiceID, itemID, "bob")
		assert.ErrorIs(t, err, store.ErrInvoiceItemExists)
	})

	t.Run("missing invoice", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices_items")).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "item_id"}))

		_, err := s.AddItem(context.Background(), invoiceID, itemID, "bob")
		assert.ErrorIs(t, err, store.ErrInvoiceNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices_items")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "invoices_items_item_id_fkey"})

		_, err := s.AddItem(context.Background(), invoiceID, itemID, "bob")
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})

	t.Run("malformed item id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		_, err := s.AddItem(context.Background(), invoiceID, "nope", "bob")
		assert.ErrorIs(t, err, store.ErrInvalidIdentifier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvoiceStore_RemoveItem(t *testing.T) {
	t.Parallel()

	t.Run("removed", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invoices_items")).
			WithArgs(invoiceID, itemID, "bob", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.RemoveItem(context.Background(), invoiceID, itemID, "bob"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pair not attached", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresInvoiceStore(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invoices_items")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.RemoveItem(context.Background(), invoiceID, itemID, "bob"), store.ErrInvoiceItemNotFound)
	})
}

func TestInvoiceStore_WithTx(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresInvoiceStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices_items")).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "item_id"}).AddRow(invoiceID, itemID))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := s.WithTx(tx).AddItem(ctx, invoiceID, itemID, "bob")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
