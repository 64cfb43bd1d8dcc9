package ratings

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/users"
	"dogwalks/internal/domain/walks"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// RequestSource entrega la solicitud de paseo. walks.Service lo implementa.
type RequestSource interface {
	GetByID(ctx context.Context, id string) (walks.WalkRequest, error)
}

// OwnerResolver resuelve el dueño de un perro. dogs.Service lo implementa.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

// AcceptedSource entrega la postulación ganadora de una solicitud.
// matching.Service lo implementa.
type AcceptedSource interface {
	AcceptedFor(ctx context.Context, requestID string) (matching.WalkApplication, error)
}

// RoleResolver entrega el rol de un usuario. users.Service lo implementa.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (users.Role, error)
}

type Service struct {
	repo     Repository
	requests RequestSource
	dogs     OwnerResolver
	accepted AcceptedSource
	roles    RoleResolver
	now      func() time.Time
}

func NewService(repo Repository, requests RequestSource, dogs OwnerResolver, accepted AcceptedSource, roles RoleResolver) *Service {
	return &Service{
		repo:     repo,
		requests: requests,
		dogs:     dogs,
		accepted: accepted,
		roles:    roles,
		now:      time.Now,
	}
}

type RateInput struct {
	Rating  int
	Comment string
}

// Rate registra la calificación del dueño sobre el paseo completado. La
// atribución al paseador sale de la postulación aceptada, nunca del request
// del cliente.
func (s *Service) Rate(ctx context.Context, ownerID, requestID string, in RateInput) (WalkRating, error) {
	ownerID = strings.TrimSpace(ownerID)
	requestID = strings.TrimSpace(requestID)
	if ownerID == "" || requestID == "" {
		return WalkRating{}, ErrInvalidInput
	}
	if in.Rating < 1 || in.Rating > 5 {
		return WalkRating{}, ErrInvalidInput
	}

	wr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return WalkRating{}, ErrNotFound
	}

	owner, err := s.dogs.OwnerOf(ctx, wr.DogID)
	if err != nil || owner != ownerID {
		return WalkRating{}, ErrForbidden
	}

	if wr.Status != walks.StatusCompleted {
		return WalkRating{}, ErrBadState
	}

	winner, err := s.accepted.AcceptedFor(ctx, requestID)
	if err != nil {
		// completed sin postulación aceptada no debería existir
		return WalkRating{}, ErrBadState
	}

	rating := WalkRating{
		ID:        uuid.NewString(),
		RequestID: requestID,
		WalkerID:  winner.WalkerID,
		OwnerID:   ownerID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		RatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, rating); err != nil {
		return WalkRating{}, err
	}
	return rating, nil
}

// Summary arma el resumen público de un paseador. Devuelve ErrNotFound si el
// usuario no existe o no es walker.
func (s *Service) Summary(ctx context.Context, walkerID string) (WalkerSummary, error) {
	walkerID = strings.TrimSpace(walkerID)
	if walkerID == "" {
		return WalkerSummary{}, ErrInvalidInput
	}

	role, err := s.roles.RoleOf(ctx, walkerID)
	if err != nil || role != users.RoleWalker {
		return WalkerSummary{}, ErrNotFound
	}

	stats, err := s.repo.StatsByWalker(ctx, walkerID)
	if err != nil {
		return WalkerSummary{}, err
	}
	stats.WalkerID = walkerID
	return summarize(stats), nil
}

// ListSummaries devuelve el resumen de todos los paseadores registrados,
// tengan o no historial.
func (s *Service) ListSummaries(ctx context.Context) ([]WalkerSummary, error) {
	all, err := s.repo.ListStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]WalkerSummary, 0, len(all))
	for _, stats := range all {
		out = append(out, summarize(stats))
	}
	return out, nil
}

// summarize redondea el promedio a un decimal; sin calificaciones queda nil
// para que el JSON muestre null y no un 0.0 engañoso.
func summarize(stats WalkerStats) WalkerSummary {
	sum := WalkerSummary{
		WalkerID:       stats.WalkerID,
		TotalRatings:   stats.TotalRatings,
		CompletedWalks: stats.CompletedWalks,
	}
	if stats.TotalRatings > 0 {
		avg := math.Round(float64(stats.RatingSum)/float64(stats.TotalRatings)*10) / 10
		sum.AverageRating = &avg
	}
	return sum
}
