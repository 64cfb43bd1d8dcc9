package walks

import (
	"context"
	"errors"
	"strings"
	"time"

	"dogwalks/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("invalid state")
	ErrTimeout      = errors.New("timeout")
)

// OwnerResolver resuelve el dueño de un perro. dogs.Service lo implementa.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo Repository
	dogs OwnerResolver
	now  func() time.Time
}

func NewService(repo Repository, dogs OwnerResolver) *Service {
	return &Service{
		repo: repo,
		dogs: dogs,
		now:  time.Now,
	}
}

type CreateInput struct {
	DogID           string
	RequestedTime   time.Time
	DurationMinutes int
	Location        string
}

// Create registra la solicitud en open. Solo el dueño del perro puede crearla.
// Los timestamps se guardan siempre en UTC para no mezclar interpretaciones
// locales al releerlos.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (WalkRequest, error) {
	ownerID = strings.TrimSpace(ownerID)
	dogID := strings.TrimSpace(in.DogID)
	if ownerID == "" || dogID == "" {
		return WalkRequest{}, ErrInvalidInput
	}
	if in.DurationMinutes <= 0 {
		return WalkRequest{}, ErrInvalidInput
	}
	if in.RequestedTime.IsZero() {
		return WalkRequest{}, ErrInvalidInput
	}

	dogOwner, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return WalkRequest{}, ErrNotFound
	}
	if dogOwner != ownerID {
		return WalkRequest{}, ErrForbidden
	}

	wr := WalkRequest{
		ID:              uuid.NewString(),
		DogID:           dogID,
		RequestedTime:   in.RequestedTime.UTC(),
		DurationMinutes: in.DurationMinutes,
		Location:        strings.TrimSpace(in.Location),
		Status:          StatusOpen,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.repo.Create(ctx, wr); err != nil {
		return WalkRequest{}, mapRepoErr(err)
	}
	return wr, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (WalkRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return WalkRequest{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Cancel la puede pedir solo el dueño, y solo mientras la solicitud siga
// open/pending. Las postulaciones pendientes quedan rechazadas en el mismo
// paso atómico (lo garantiza el repo).
func (s *Service) Cancel(ctx context.Context, callerID, requestID string) error {
	callerID = strings.TrimSpace(callerID)
	requestID = strings.TrimSpace(requestID)
	if callerID == "" || requestID == "" {
		return ErrInvalidInput
	}

	wr, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return mapRepoErr(err)
	}

	owner, err := s.dogs.OwnerOf(ctx, wr.DogID)
	if err != nil || owner != callerID {
		return ErrForbidden
	}

	return mapRepoErr(s.repo.Cancel(ctx, requestID))
}

// Complete pasa accepted -> completed. Quién lo dispara (owner o un job por
// horario) lo decide la capa de afuera; acá solo se valida la transición.
func (s *Service) Complete(ctx context.Context, requestID string) error {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ErrInvalidInput
	}
	return mapRepoErr(s.repo.Complete(ctx, requestID))
}

// ListFeed devuelve el feed de solicitudes abiertas/pendientes.
// Un owner ve solo las de sus perros; un walker ve todas.
func (s *Service) ListFeed(ctx context.Context, callerRole auth.Role, callerID string) ([]FeedItem, error) {
	ownerFilter := ""
	if callerRole == auth.RoleOwner {
		ownerFilter = strings.TrimSpace(callerID)
		if ownerFilter == "" {
			return nil, ErrInvalidInput
		}
	}

	items, err := s.repo.ListFeed(ctx, ownerFilter)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return items, nil
}

// mapRepoErr traduce el deadline del gateway a ErrTimeout; el resto pasa igual.
func mapRepoErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
