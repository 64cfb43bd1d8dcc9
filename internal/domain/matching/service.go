package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"dogwalks/internal/domain/walks"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrTimeout      = errors.New("timeout")
)

// RequestSource da acceso de lectura a las solicitudes. walks.Service lo implementa.
type RequestSource interface {
	GetByID(ctx context.Context, id string) (walks.WalkRequest, error)
}

// OwnerResolver resuelve el dueño de un perro. dogs.Service lo implementa.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type Service struct {
	repo     Repository
	requests RequestSource
	dogs     OwnerResolver
	now      func() time.Time
}

func NewService(repo Repository, requests RequestSource, dogs OwnerResolver) *Service {
	return &Service{
		repo:     repo,
		requests: requests,
		dogs:     dogs,
		now:      time.Now,
	}
}

// Apply registra la postulación del walker. El chequeo de estado y el pase
// open -> pending van juntos dentro del repo; acá solo se arma el registro.
// Un segundo apply del mismo walker sobre la misma solicitud da ErrConflict.
func (s *Service) Apply(ctx context.Context, walkerID, requestID string) (WalkApplication, error) {
	walkerID = strings.TrimSpace(walkerID)
	requestID = strings.TrimSpace(requestID)
	if walkerID == "" || requestID == "" {
		return WalkApplication{}, ErrInvalidInput
	}

	app := WalkApplication{
		ID:        uuid.NewString(),
		RequestID: requestID,
		WalkerID:  walkerID,
		Status:    StatusPending,
		AppliedAt: s.now().UTC(),
	}

	if err := s.repo.Apply(ctx, app); err != nil {
		return WalkApplication{}, mapRepoErr(err)
	}
	return app, nil
}

// Accept es la decisión explícita del owner: no hay ranking ni auto-match.
// La autorización se chequea acá; el "gana exactamente uno" lo garantiza el
// repo con su update condicional, incluso con accepts concurrentes.
func (s *Service) Accept(ctx context.Context, ownerID, requestID, applicationID string) error {
	ownerID = strings.TrimSpace(ownerID)
	requestID = strings.TrimSpace(requestID)
	applicationID = strings.TrimSpace(applicationID)
	if ownerID == "" || requestID == "" || applicationID == "" {
		return ErrInvalidInput
	}

	wr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return ErrNotFound
	}

	owner, err := s.dogs.OwnerOf(ctx, wr.DogID)
	if err != nil || owner != ownerID {
		return ErrForbidden
	}

	return mapRepoErr(s.repo.Accept(ctx, requestID, applicationID))
}

// ListByRequest la usa el owner para ver sus postulantes.
func (s *Service) ListByRequest(ctx context.Context, callerID, requestID string) ([]WalkApplication, error) {
	callerID = strings.TrimSpace(callerID)
	requestID = strings.TrimSpace(requestID)
	if callerID == "" || requestID == "" {
		return nil, ErrInvalidInput
	}

	wr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	owner, err := s.dogs.OwnerOf(ctx, wr.DogID)
	if err != nil || owner != callerID {
		return nil, ErrForbidden
	}

	return s.repo.ListByRequest(ctx, requestID)
}

// AcceptedFor expone la postulación ganadora de una solicitud.
// Lo usa ratings para saber a qué walker corresponde la calificación.
func (s *Service) AcceptedFor(ctx context.Context, requestID string) (WalkApplication, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return WalkApplication{}, ErrInvalidInput
	}
	return s.repo.AcceptedByRequest(ctx, requestID)
}

func mapRepoErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
