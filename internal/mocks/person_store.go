package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/store"
)

// MockPersonStore is a function-field mock of store.PersonStore.
type MockPersonStore struct {
	CreateFn          func(ctx context.Context, p store.NewPerson) (*store.PersonRow, error)
	GetBySequenceIDFn func(ctx context.Context, seq int64) (*store.PersonRow, error)
	GetByExternalIDFn func(ctx context.Context, id string) (*store.PersonRow, error)
	ListPageFn        func(ctx context.Context, cursor *store.Cursor) ([]store.PersonRow, error)
	UpdateFn          func(ctx context.Context, id string, upd store.PersonUpdate) (*store.PersonRow, error)
	DeleteFn          func(ctx context.Context, id string) error

	// Calls counts every store method invocation.
	Calls int
}

var _ store.PersonStore = (*MockPersonStore)(nil)

func (m *MockPersonStore) Create(ctx context.Context, p store.NewPerson) (*store.PersonRow, error) {
	m.Calls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return &store.PersonRow{Name: p.Name, Email: p.Email}, nil
}

func (m *MockPersonStore) GetBySequenceID(ctx context.Context, seq int64) (*store.PersonRow, error) {
	m.Calls++
	if m.GetBySequenceIDFn != nil {
		return m.GetBySequenceIDFn(ctx, seq)
	}
	return &store.PersonRow{ID: seq}, nil
}

func (m *MockPersonStore) GetByExternalID(ctx context.Context, id string) (*store.PersonRow, error) {
	m.Calls++
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, id)
	}
	return &store.PersonRow{}, nil
}

func (m *MockPersonStore) ListPage(ctx context.Context, cursor *store.Cursor) ([]store.PersonRow, error) {
	m.Calls++
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, cursor)
	}
	return []store.PersonRow{}, nil
}

func (m *MockPersonStore) Update(ctx context.Context, id string, upd store.PersonUpdate) (*store.PersonRow, error) {
	m.Calls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	return &store.PersonRow{Name: upd.Name, Email: upd.Email}, nil
}

func (m *MockPersonStore) Delete(ctx context.Context, id string) error {
	m.Calls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx returns the mock itself.
func (m *MockPersonStore) WithTx(*sqlx.Tx) store.PersonStore {
	return m
}
