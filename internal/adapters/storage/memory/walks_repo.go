package memory

import (
	"context"
	"errors"
	"sort"

	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/walks"
)

type walksRepo struct {
	store *Store
}

func NewWalksRepo(store *Store) walks.Repository {
	return &walksRepo{store: store}
}

func (r *walksRepo) Create(ctx context.Context, wr walks.WalkRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.requests[wr.ID]; exists {
		return errors.New("walk request already exists")
	}
	r.store.requests[wr.ID] = wr
	return nil
}

func (r *walksRepo) GetByID(ctx context.Context, id string) (walks.WalkRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wr, ok := r.store.requests[id]
	if !ok {
		return walks.WalkRequest{}, walks.ErrNotFound
	}
	return wr, nil
}

// Cancel pasa a cancelled y rechaza las postulaciones pendientes bajo el
// mismo lock, igual que lo haría la transacción en Postgres.
func (r *walksRepo) Cancel(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wr, ok := r.store.requests[id]
	if !ok {
		return walks.ErrNotFound
	}
	if !walks.CanTransition(wr.Status, walks.StatusCancelled) {
		return walks.ErrBadState
	}

	wr.Status = walks.StatusCancelled
	r.store.requests[id] = wr

	for appID, app := range r.store.applications {
		if app.RequestID == id && app.Status == matching.StatusPending {
			app.Status = matching.StatusRejected
			r.store.applications[appID] = app
		}
	}
	return nil
}

func (r *walksRepo) Complete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wr, ok := r.store.requests[id]
	if !ok {
		return walks.ErrNotFound
	}
	if !walks.CanTransition(wr.Status, walks.StatusCompleted) {
		return walks.ErrBadState
	}

	wr.Status = walks.StatusCompleted
	r.store.requests[id] = wr
	return nil
}

func (r *walksRepo) ListFeed(ctx context.Context, ownerID string) ([]walks.FeedItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]walks.FeedItem, 0)
	for _, wr := range r.store.requests {
		if wr.Status != walks.StatusOpen && wr.Status != walks.StatusPending {
			continue
		}
		dog, ok := r.store.dogs[wr.DogID]
		if !ok {
			continue
		}
		if ownerID != "" && dog.OwnerID != ownerID {
			continue
		}
		owner := r.store.users[dog.OwnerID]

		out = append(out, walks.FeedItem{
			RequestID:       wr.ID,
			DogID:           dog.ID,
			DogName:         dog.Name,
			DogSize:         string(dog.Size),
			OwnerID:         dog.OwnerID,
			OwnerName:       owner.Username,
			RequestedTime:   wr.RequestedTime,
			DurationMinutes: wr.DurationMinutes,
			Location:        wr.Location,
			Status:          wr.Status,
			CreatedAt:       wr.CreatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedTime.After(out[j].RequestedTime)
	})
	return out, nil
}
