package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/mocks"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func newInvoiceService(t *testing.T, invoices *mocks.MockInvoiceStore, persons *mocks.MockPersonStore) (service.InvoiceService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	if persons == nil {
		persons = &mocks.MockPersonStore{}
	}
	return service.NewInvoiceService(invoices, persons, db, nil), mock
}

func TestCreateInvoiceWithoutItems(t *testing.T) {
	t.Parallel()
	personID := newID()
	invoices := &mocks.MockInvoiceStore{
		CreateFn: func(_ context.Context, inv store.NewInvoice) (*store.InvoiceRow, error) {
			return &store.InvoiceRow{ID: 1, AltID: newID(), UserID: uuid.MustParse(inv.PersonID), Total: inv.Total}, nil
		},
	}
	svc, mock := newInvoiceService(t, invoices, nil)

	inv, err := svc.CreateInvoice(context.Background(), claims, domain.CreateInvoiceRequest{
		PersonID: personID.String(), Total: 12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, personID, inv.PersonID)
	assert.NotNil(t, inv.Items)
	assert.Empty(t, inv.Items)
	// No transaction is opened for a bare insert.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceWithItemsCommits(t *testing.T) {
	t.Parallel()
	invoiceID := newID()
	itemA, itemB := newID(), newID()

	var added []string
	invoices := &mocks.MockInvoiceStore{
		CreateFn: func(_ context.Context, inv store.NewInvoice) (*store.InvoiceRow, error) {
			return &store.InvoiceRow{ID: 4, AltID: invoiceID, Total: inv.Total, Audit: audit(inv.CreatedBy)}, nil
		},
		AddItemFn: func(_ context.Context, invID, itemID, actor string) (*store.InvoiceItemRow, error) {
			assert.Equal(t, invoiceID.String(), invID)
			assert.Equal(t, "clerk", actor)
			added = append(added, itemID)
			return &store.InvoiceItemRow{}, nil
		},
		GetWithItemsFn: func(context.Context, string) (*store.InvoiceAggregate, error) {
			return &store.InvoiceAggregate{
				Invoice: store.InvoiceRow{ID: 4, AltID: invoiceID},
				Items:   []store.ItemRow{{ID: 1, AltID: itemA}, {ID: 2, AltID: itemB}},
			}, nil
		},
	}
	svc, mock := newInvoiceService(t, invoices, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()

	inv, err := svc.CreateInvoice(context.Background(), claims, domain.CreateInvoiceRequest{
		PersonID:  newID().String(),
		Total:     30,
		ItemIDs:   []string{itemA.String(), itemB.String()},
		CreatedBy: "clerk",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{itemA.String(), itemB.String()}, added)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, itemB, inv.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceWithMissingItemRollsBack(t *testing.T) {
	t.Parallel()
	invoices := &mocks.MockInvoiceStore{
		CreateFn: func(context.Context, store.NewInvoice) (*store.InvoiceRow, error) {
			return &store.InvoiceRow{AltID: newID()}, nil
		},
		AddItemFn: func(context.Context, string, string, string) (*store.InvoiceItemRow, error) {
			return nil, store.ErrItemNotFound
		},
	}
	svc, mock := newInvoiceService(t, invoices, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CreateInvoice(context.Background(), claims, domain.CreateInvoiceRequest{
		PersonID: newID().String(),
		ItemIDs:  []string{newID().String()},
	})
	requireKind(t, err, service.KindNotFound)
	assert.Contains(t, err.Error(), "item not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceValidation(t *testing.T) {
	t.Parallel()
	invoices := &mocks.MockInvoiceStore{}
	svc, mock := newInvoiceService(t, invoices, nil)

	for _, req := range []domain.CreateInvoiceRequest{
		{Total: 1},
		{PersonID: newID().String(), Total: -1},
		{PersonID: newID().String(), Total: 1e10},
		{PersonID: newID().String(), ItemIDs: []string{""}},
	} {
		_, err := svc.CreateInvoice(context.Background(), claims, req)
		requireKind(t, err, service.KindInputValidationFailed)
	}
	assert.Zero(t, invoices.Calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceUnknownPerson(t *testing.T) {
	t.Parallel()
	invoices := &mocks.MockInvoiceStore{
		CreateFn: func(context.Context, store.NewInvoice) (*store.InvoiceRow, error) {
			return nil, store.ErrPersonNotFound
		},
	}
	svc, _ := newInvoiceService(t, invoices, nil)

	_, err := svc.CreateInvoice(context.Background(), claims, domain.CreateInvoiceRequest{PersonID: newID().String()})
	requireKind(t, err, service.KindNotFound)
}

func TestGetInvoice(t *testing.T) {
	t.Parallel()
	id := newID()

	t.Run("without items reads the invoice only", func(t *testing.T) {
		t.Parallel()
		invoices := &mocks.MockInvoiceStore{
			GetByExternalIDFn: func(context.Context, string) (*store.InvoiceRow, error) {
				return &store.InvoiceRow{AltID: id}, nil
			},
			GetWithItemsFn: func(context.Context, string) (*store.InvoiceAggregate, error) {
				t.Fatal("join must not run")
				return nil, nil
			},
		}
		svc, _ := newInvoiceService(t, invoices, nil)

		inv, err := svc.GetInvoice(context.Background(), claims, id.String(), false)
		require.NoError(t, err)
		assert.Equal(t, id, inv.ID)
	})

	t.Run("with zero items", func(t *testing.T) {
		t.Parallel()
		invoices := &mocks.MockInvoiceStore{
			GetWithItemsFn: func(context.Context, string) (*store.InvoiceAggregate, error) {
				return &store.InvoiceAggregate{Invoice: store.InvoiceRow{AltID: id}, Items: []store.ItemRow{}}, nil
			},
		}
		svc, _ := newInvoiceService(t, invoices, nil)

		inv, err := svc.GetInvoice(context.Background(), claims, id.String(), true)
		require.NoError(t, err)
		assert.NotNil(t, inv.Items)
		assert.Empty(t, inv.Items)
	})

	t.Run("nonexistent", func(t *testing.T) {
		t.Parallel()
		invoices := &mocks.MockInvoiceStore{
			GetWithItemsFn: func(context.Context, string) (*store.InvoiceAggregate, error) {
				return nil, store.ErrInvoiceNotFound
			},
		}
		svc, _ := newInvoiceService(t, invoices, nil)

		_, err := svc.GetInvoice(context.Background(), claims, id.String(), true)
		requireKind(t, err, service.KindNotFound)
	})
}

func TestListInvoicesForPerson(t *testing.T) {
	t.Parallel()

	t.Run("unknown person", func(t *testing.T) {
		t.Parallel()
		invoices := &mocks.MockInvoiceStore{}
		persons := &mocks.MockPersonStore{
			GetByExternalIDFn: func(context.Context, string) (*store.PersonRow, error) {
				return nil, store.ErrPersonNotFound
			},
		}
		svc, _ := newInvoiceService(t, invoices, persons)

		_, err := svc.ListInvoicesForPerson(context.Background(), claims, newID().String())
		requireKind(t, err, service.KindNotFound)
		assert.Zero(t, invoices.Calls)
	})

	t.Run("lists in order", func(t *testing.T) {
		t.Parallel()
		invoices := &mocks.MockInvoiceStore{
			ListByPersonFn: func(context.Context, string) ([]store.InvoiceRow, error) {
				return []store.InvoiceRow{{ID: 1}, {ID: 5}}, nil
			},
		}
		svc, _ := newInvoiceService(t, invoices, nil)

		list, err := svc.ListInvoicesForPerson(context.Background(), claims, newID().String())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(5), list[1].Seq)
	})
}

func TestUpdateInvoicePathMismatch(t *testing.T) {
	t.Parallel()
	invoices := &mocks.MockInvoiceStore{}
	svc, _ := newInvoiceService(t, invoices, nil)

	_, err := svc.UpdateInvoice(context.Background(), claims, newID().String(), domain.UpdateInvoiceRequest{
		ID: newID().String(), Total: 1,
	})
	requireKind(t, err, service.KindInputValidationFailed)
	assert.Zero(t, invoices.Calls)
}

func TestUpdateInvoiceTotalRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total float64
	}{
		{"negative total", -0.01},
		{"total above column range", 1e10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			invoices := &mocks.MockInvoiceStore{}
			svc, mock := newInvoiceService(t, invoices, nil)
			id := newID().String()

			_, err := svc.UpdateInvoice(context.Background(), claims, id, domain.UpdateInvoiceRequest{
				ID: id, Total: tt.total,
			})
			requireKind(t, err, service.KindInputValidationFailed)
			assert.Contains(t, err.Error(), "total")
			assert.Zero(t, invoices.Calls)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvoiceItemAssociation(t *testing.T) {
	t.Parallel()
	invoiceID, itemID := newID(), newID()

	invoices := &mocks.MockInvoiceStore{
		AddItemFn: func(_ context.Context, inv, item, actor string) (*store.InvoiceItemRow, error) {
			assert.Equal(t, claims.Subject, actor)
			return &store.InvoiceItemRow{InvoiceID: uuid.MustParse(inv), ItemID: uuid.MustParse(item)}, nil
		},
		RemoveItemFn: func(context.Context, string, string, string) error {
			return store.ErrInvoiceItemNotFound
		},
	}
	svc, _ := newInvoiceService(t, invoices, nil)

	pair, err := svc.AddItem(context.Background(), claims, invoiceID.String(), domain.AddInvoiceItemRequest{ItemID: itemID.String()})
	require.NoError(t, err)
	assert.Equal(t, invoiceID, pair.InvoiceID)
	assert.Equal(t, itemID, pair.ItemID)

	_, err = svc.AddItem(context.Background(), claims, invoiceID.String(), domain.AddInvoiceItemRequest{})
	requireKind(t, err, service.KindInputValidationFailed)

	_, err = svc.RemoveItem(context.Background(), claims, invoiceID.String(), itemID.String())
	requireKind(t, err, service.KindNotFound)
}

func TestAddItemDuplicate(t *testing.T) {
	t.Parallel()
	invoices := &mocks.MockInvoiceStore{
		AddItemFn: func(context.Context, string, string, string) (*store.InvoiceItemRow, error) {
			return nil, store.ErrInvoiceItemExists
		},
	}
	svc, _ := newInvoiceService(t, invoices, nil)

	_, err := svc.AddItem(context.Background(), claims, newID().String(), domain.AddInvoiceItemRequest{ItemID: newID().String()})
	requireKind(t, err, service.KindUniqueConstraintViolation)
}
