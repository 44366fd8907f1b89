package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/store"
)

// MockItemStore is a function-field mock of store.ItemStore.
type MockItemStore struct {
	CreateFn          func(ctx context.Context, it store.NewItem) (*store.ItemRow, error)
	GetBySequenceIDFn func(ctx context.Context, seq int64) (*store.ItemRow, error)
	GetByExternalIDFn func(ctx context.Context, id string) (*store.ItemRow, error)
	ListPageFn        func(ctx context.Context, cursor *store.Cursor) ([]store.ItemRow, error)
	UpdateFn          func(ctx context.Context, id string, upd store.ItemUpdate) (*store.ItemRow, error)
	DeleteFn          func(ctx context.Context, id string) error

	Calls int
}

var _ store.ItemStore = (*MockItemStore)(nil)

func (m *MockItemStore) Create(ctx context.Context, it store.NewItem) (*store.ItemRow, error) {
	m.Calls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, it)
	}
	return &store.ItemRow{Name: it.Name, Description: it.Description, UnitPrice: it.UnitPrice}, nil
}

func (m *MockItemStore) GetBySequenceID(ctx context.Context, seq int64) (*store.ItemRow, error) {
	m.Calls++
	if m.GetBySequenceIDFn != nil {
		return m.GetBySequenceIDFn(ctx, seq)
	}
	return &store.ItemRow{ID: seq}, nil
}

func (m *MockItemStore) GetByExternalID(ctx context.Context, id string) (*store.ItemRow, error) {
	m.Calls++
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, id)
	}
	return &store.ItemRow{}, nil
}

func (m *MockItemStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.ItemRow, error) {
	m.Calls++
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, cursor)
	}
	return []store.ItemRow{}, nil
}

func (m *MockItemStore) Update(ctx context.Context, id string, upd store.ItemUpdate) (*store.ItemRow, error) {
	m.Calls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	return &store.ItemRow{Name: upd.Name}, nil
}

func (m *MockItemStore) Delete(ctx context.Context, id string) error {
	m.Calls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockItemStore) WithTx(*sqlx.Tx) store.ItemStore {
	return m
}
