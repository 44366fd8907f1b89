package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

// ItemService provides item operations to the HTTP layer.
type ItemService interface {
	ListItems(ctx context.Context, claims auth.Claims, cursor *store.Cursor) (*domain.Page[domain.Item], error)
	GetItem(ctx context.Context, claims auth.Claims, id string) (*domain.Item, error)
	CreateItem(ctx context.Context, claims auth.Claims, req domain.CreateItemRequest) (*domain.Item, error)
	UpdateItem(ctx context.Context, claims auth.Claims, pathID string, req domain.UpdateItemRequest) (*domain.Item, error)
	DeleteItem(ctx context.Context, claims auth.Claims, id string) (*domain.DeleteResult, error)
}

type itemService struct {
	items  store.ItemStore
	logger *slog.Logger
}

// NewItemService creates an ItemService backed by items.
func NewItemService(items store.ItemStore, logger *slog.Logger) ItemService {
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &itemService{
		items:  items,
		logger: logger.With(slog.String("component", "item_service")),
	}
}

func (s *itemService) fail(ctx context.Context, operation string, err error) error {
	svcErr := FromStore(operation, err)
	logFailure(ctx, s.logger, operation, svcErr)
	return svcErr
}

func (s *itemService) ListItems(
	ctx context.Context,
	_ auth.Claims,
	cursor *store.Cursor,
) (*domain.Page[domain.Item], error) {
	const op = "list_items"
	if err := checkCursor(op, cursor); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	resolved := store.Resolve(cursor)
	rows, err := s.items.ListPage(ctx, &resolved)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	page := domain.NewPage(mapRows(rows, itemFromRow), resolved.PageSize, itemSeq)
	return &page, nil
}

func (s *itemService) GetItem(ctx context.Context, _ auth.Claims, id string) (*domain.Item, error) {
	row, err := s.items.GetByExternalID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get_item", err)
	}
	it := itemFromRow(*row)
	return &it, nil
}

func (s *itemService) CreateItem(
	ctx context.Context,
	claims auth.Claims,
	req domain.CreateItemRequest,
) (*domain.Item, error) {
	const op = "create_item"
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.items.Create(ctx, store.NewItem{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		CreatedBy:   actor(claims, req.CreatedBy),
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	it := itemFromRow(*row)
	return &it, nil
}

func (s *itemService) UpdateItem(
	ctx context.Context,
	claims auth.Claims,
	pathID string,
	req domain.UpdateItemRequest,
) (*domain.Item, error) {
	const op = "update_item"
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if err := checkPathID(op, pathID, req.ID); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.items.Update(ctx, pathID, store.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		ChangedBy:   actor(claims, req.ChangedBy),
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	it := itemFromRow(*row)
	return &it, nil
}

func (s *itemService) DeleteItem(ctx context.Context, _ auth.Claims, id string) (*domain.DeleteResult, error) {
	if err := s.items.Delete(ctx, id); err != nil {
		return nil, s.fail(ctx, "delete_item", err)
	}
	return &domain.DeleteResult{ID: id, Deleted: true}, nil
}
