package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

// PersonService provides person operations to the HTTP layer.
type PersonService interface {
	ListPersons(ctx context.Context, claims auth.Claims, cursor *store.Cursor) (*domain.Page[domain.Person], error)
	GetPerson(ctx context.Context, claims auth.Claims, id string) (*domain.Person, error)
	GetPersonBySequence(ctx context.Context, claims auth.Claims, seq int64) (*domain.Person, error)
	CreatePerson(ctx context.Context, claims auth.Claims, req domain.CreatePersonRequest) (*domain.Person, error)
	UpdatePerson(ctx context.Context, claims auth.Claims, pathID string, req domain.UpdatePersonRequest) (*domain.Person, error)
	DeletePerson(ctx context.Context, claims auth.Claims, id string) (*domain.DeleteResult, error)
}

type personService struct {
	persons store.PersonStore
	logger  *slog.Logger
}

// NewPersonService creates a PersonService backed by persons.
func NewPersonService(persons store.PersonStore, logger *slog.Logger) PersonService {
	if persons == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("persons store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &personService{
		persons: persons,
		logger:  logger.With(slog.String("component", "person_service")),
	}
}

func (s *personService) fail(ctx context.Context, operation string, err error) error {
	svcErr := FromStore(operation, err)
	logFailure(ctx, s.logger, operation, svcErr)
	return svcErr
}

func (s *personService) ListPersons(
	ctx context.Context,
	_ auth.Claims,
	cursor *store.Cursor,
) (*domain.Page[domain.Person], error) {
	const op = "list_persons"
	if err := checkCursor(op, cursor); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	resolved := store.Resolve(cursor)
	rows, err := s.persons.ListPage(ctx, &resolved)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	page := domain.NewPage(mapRows(rows, personFromRow), resolved.PageSize, personSeq)
	return &page, nil
}

func (s *personService) GetPerson(ctx context.Context, _ auth.Claims, id string) (*domain.Person, error) {
	row, err := s.persons.GetByExternalID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get_person", err)
	}
	p := personFromRow(*row)
	return &p, nil
}

func (s *personService) GetPersonBySequence(ctx context.Context, _ auth.Claims, seq int64) (*domain.Person, error) {
	row, err := s.persons.GetBySequenceID(ctx, seq)
	if err != nil {
		return nil, s.fail(ctx, "get_person_by_sequence", err)
	}
	p := personFromRow(*row)
	return &p, nil
}

func (s *personService) CreatePerson(
	ctx context.Context,
	claims auth.Claims,
	req domain.CreatePersonRequest,
) (*domain.Person, error) {
	const op = "create_person"
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.persons.Create(ctx, store.NewPerson{
		Name:      req.Name,
		Email:     req.Email,
		CreatedBy: actor(claims, req.CreatedBy),
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("person created",
		slog.String("person_id", row.AltID.String()))
	p := personFromRow(*row)
	return &p, nil
}

func (s *personService) UpdatePerson(
	ctx context.Context,
	claims auth.Claims,
	pathID string,
	req domain.UpdatePersonRequest,
) (*domain.Person, error) {
	const op = "update_person"
	req.Email = domain.NormalizeEmail(req.Email)
	if err := validateRequest(op, req); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if err := checkPathID(op, pathID, req.ID); err != nil {
		return nil, s.fail(ctx, op, err)
	}

	row, err := s.persons.Update(ctx, pathID, store.PersonUpdate{
		Name:      req.Name,
		Email:     req.Email,
		ChangedBy: actor(claims, req.ChangedBy),
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	p := personFromRow(*row)
	return &p, nil
}

func (s *personService) DeletePerson(ctx context.Context, _ auth.Claims, id string) (*domain.DeleteResult, error) {
	if err := s.persons.Delete(ctx, id); err != nil {
		return nil, s.fail(ctx, "delete_person", err)
	}
	return &domain.DeleteResult{ID: id, Deleted: true}, nil
}
