package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/store"
)

// MockInvoiceStore is a function-field mock of store.InvoiceStore.
type MockInvoiceStore struct {
	CreateFn          func(ctx context.Context, inv store.NewInvoice) (*store.InvoiceRow, error)
	GetBySequenceIDFn func(ctx context.Context, seq int64) (*store.InvoiceRow, error)
	GetByExternalIDFn func(ctx context.Context, id string) (*store.InvoiceRow, error)
	ListPageFn        func(ctx context.Context, cursor *store.Cursor) ([]store.InvoiceRow, error)
	UpdateFn          func(ctx context.Context, id string, upd store.InvoiceUpdate) (*store.InvoiceRow, error)
	DeleteFn          func(ctx context.Context, id string) error
	ListByPersonFn    func(ctx context.Context, personID string) ([]store.InvoiceRow, error)
	GetWithItemsFn    func(ctx context.Context, id string) (*store.InvoiceAggregate, error)
	AddItemFn         func(ctx context.Context, invoiceID, itemID, actor string) (*store.InvoiceItemRow, error)
	RemoveItemFn      func(ctx context.Context, invoiceID, itemID, actor string) error

	// WithTxFn, when set, supplies the store handed out for a transaction.
	WithTxFn func(tx *sqlx.Tx) store.InvoiceStore

	Calls int
}

var _ store.InvoiceStore = (*MockInvoiceStore)(nil)

func (m *MockInvoiceStore) Create(ctx context.Context, inv store.NewInvoice) (*store.InvoiceRow, error) {
	m.Calls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return &store.InvoiceRow{Total: inv.Total, Paid: inv.Paid}, nil
}

func (m *MockInvoiceStore) GetBySequenceID(ctx context.Context, seq int64) (*store.InvoiceRow, error) {
	m.Calls++
	if m.GetBySequenceIDFn != nil {
		return m.GetBySequenceIDFn(ctx, seq)
	}
	return &store.InvoiceRow{ID: seq}, nil
}

func (m *MockInvoiceStore) GetByExternalID(ctx context.Context, id string) (*store.InvoiceRow, error) {
	m.Calls++
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, id)
	}
	return &store.InvoiceRow{}, nil
}

func (m *MockInvoiceStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.InvoiceRow, error) {
	m.Calls++
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, cursor)
	}
	return []store.InvoiceRow{}, nil
}

func (m *MockInvoiceStore) Update(ctx context.Context, id string, upd store.InvoiceUpdate) (*store.InvoiceRow, error) {
	m.Calls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	return &store.InvoiceRow{Total: upd.Total, Paid: upd.Paid}, nil
}

func (m *MockInvoiceStore) Delete(ctx context.Context, id string) error {
	m.Calls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockInvoiceStore) ListByPerson(ctx context.Context, personID string) ([]store.InvoiceRow, error) {
	m.Calls++
	if m.ListByPersonFn != nil {
		return m.ListByPersonFn(ctx, personID)
	}
	return []store.InvoiceRow{}, nil
}

func (m *MockInvoiceStore) GetWithItems(ctx context.Context, id string) (*store.InvoiceAggregate, error) {
	m.Calls++
	if m.GetWithItemsFn != nil {
		return m.GetWithItemsFn(ctx, id)
	}
	return &store.InvoiceAggregate{Items: []store.ItemRow{}}, nil
}

func (m *MockInvoiceStore) AddItem(ctx context.Context, invoiceID, itemID, actor string) (*store.InvoiceItemRow, error) {
	m.Calls++
	if m.AddItemFn != nil {
		return m.AddItemFn(ctx, invoiceID, itemID, actor)
	}
	return &store.InvoiceItemRow{}, nil
}

func (m *MockInvoiceStore) RemoveItem(ctx context.Context, invoiceID, itemID, actor string) error {
	m.Calls++
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, invoiceID, itemID, actor)
	}
	return nil
}

func (m *MockInvoiceStore) WithTx(tx *sqlx.Tx) store.InvoiceStore {
	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}
