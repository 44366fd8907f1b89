package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/mocks"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		id := newID()
		items := &mocks.MockItemStore{
			CreateFn: func(_ context.Context, it store.NewItem) (*store.ItemRow, error) {
				return &store.ItemRow{ID: 2, AltID: id, Name: it.Name, UnitPrice: it.UnitPrice, Audit: audit(it.CreatedBy)}, nil
			},
		}
		svc := service.NewItemService(items, nil)

		item, err := svc.CreateItem(context.Background(), claims, domain.CreateItemRequest{
			Name: "Widget", UnitPrice: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, id, item.ID)
		assert.Equal(t, claims.Subject, item.CreatedBy)
	})

	invalid := []struct {
		name string
		req  domain.CreateItemRequest
	}{
		{"missing name", domain.CreateItemRequest{UnitPrice: 1}},
		{"negative price", domain.CreateItemRequest{Name: "Widget", UnitPrice: -0.01}},
		{"price above column range", domain.CreateItemRequest{Name: "Widget", UnitPrice: 1e10}},
		{"description too long", domain.CreateItemRequest{Name: "Widget", Description: strings.Repeat("x", 501)}},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := &mocks.MockItemStore{}
			svc := service.NewItemService(items, nil)

			_, err := svc.CreateItem(context.Background(), claims, tt.req)
			requireKind(t, err, service.KindInputValidationFailed)
			assert.Zero(t, items.Calls)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()
	id := newID().String()

	items := &mocks.MockItemStore{}
	svc := service.NewItemService(items, nil)
	_, err := svc.UpdateItem(context.Background(), claims, id, domain.UpdateItemRequest{
		ID: "other", Name: "Widget",
	})
	requireKind(t, err, service.KindInputValidationFailed)
	assert.Zero(t, items.Calls)

	var changedBy string
	items = &mocks.MockItemStore{
		UpdateFn: func(_ context.Context, _ string, upd store.ItemUpdate) (*store.ItemRow, error) {
			changedBy = upd.ChangedBy
			return &store.ItemRow{Name: upd.Name}, nil
		},
	}
	svc = service.NewItemService(items, nil)
	item, err := svc.UpdateItem(context.Background(), claims, id, domain.UpdateItemRequest{
		ID: id, Name: "Gadget", UnitPrice: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", item.Name)
	assert.Equal(t, claims.Subject, changedBy)
}

func TestUpdateItemPriceRange(t *testing.T) {
	t.Parallel()
	id := newID().String()

	tests := []struct {
		name  string
		price float64
		ok    bool
	}{
		{"largest storable price", 9999999999.99, true},
		{"price above column range", 1e10, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := &mocks.MockItemStore{
				UpdateFn: func(_ context.Context, _ string, upd store.ItemUpdate) (*store.ItemRow, error) {
					return &store.ItemRow{Name: upd.Name, UnitPrice: upd.UnitPrice}, nil
				},
			}
			svc := service.NewItemService(items, nil)

			_, err := svc.UpdateItem(context.Background(), claims, id, domain.UpdateItemRequest{
				ID: id, Name: "Widget", UnitPrice: tt.price,
			})
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, 1, items.Calls)
				return
			}
			requireKind(t, err, service.KindInputValidationFailed)
			assert.Contains(t, err.Error(), "unit_price")
			assert.Zero(t, items.Calls)
		})
	}
}

func TestListItemsAfterCursor(t *testing.T) {
	t.Parallel()
	last := int64(20)
	var got *store.Cursor
	items := &mocks.MockItemStore{
		ListPageFn: func(_ context.Context, c *store.Cursor) ([]store.ItemRow, error) {
			got = c
			return []store.ItemRow{{ID: 21}}, nil
		},
	}
	svc := service.NewItemService(items, nil)

	page, err := svc.ListItems(context.Background(), claims, &store.Cursor{LastSeenID: &last, PageSize: 5})
	require.NoError(t, err)
	require.NotNil(t, got.LastSeenID)
	assert.Equal(t, last, *got.LastSeenID)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, int64(21), *page.LastID)
}

func TestGetAndDeleteItem(t *testing.T) {
	t.Parallel()
	items := &mocks.MockItemStore{
		GetByExternalIDFn: func(context.Context, string) (*store.ItemRow, error) {
			return nil, store.ErrItemNotFound
		},
		DeleteFn: func(context.Context, string) error {
			return store.NewStoreError("item", "parse id", "malformed", store.ErrInvalidIdentifier)
		},
	}
	svc := service.NewItemService(items, nil)

	_, err := svc.GetItem(context.Background(), claims, newID().String())
	requireKind(t, err, service.KindNotFound)

	_, err = svc.DeleteItem(context.Background(), claims, "7")
	requireKind(t, err, service.KindInvalidIdentifier)
}
