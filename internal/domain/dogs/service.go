package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"dogwalks/internal/domain/users"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

// RoleResolver evita acoplar este módulo al repo de users.
// users.Service lo implementa.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (users.Role, error)
}

type Service struct {
	repo  Repository
	roles RoleResolver
	now   func() time.Time
}

func NewService(repo Repository, roles RoleResolver) *Service {
	return &Service{
		repo:  repo,
		roles: roles,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name string
	Size string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Dog, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Dog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Dog{}, ErrInvalidInput
	}

	size := Size(strings.TrimSpace(in.Size))
	if size != SizeSmall && size != SizeMedium && size != SizeLarge {
		return Dog{}, ErrInvalidInput
	}

	// Solo cuentas con rol owner pueden registrar perros.
	role, err := s.roles.RoleOf(ctx, ownerID)
	if err != nil {
		return Dog{}, ErrNotFound
	}
	if role != users.RoleOwner {
		return Dog{}, ErrForbidden
	}

	d := Dog{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Size:      size,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
