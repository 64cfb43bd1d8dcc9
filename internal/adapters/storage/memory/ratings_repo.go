package memory

import (
	"context"

	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/ratings"
	"dogwalks/internal/domain/users"
	"dogwalks/internal/domain/walks"
)

type ratingsRepo struct {
	store *Store
}

func NewRatingsRepo(store *Store) ratings.Repository {
	return &ratingsRepo{store: store}
}

func (r *ratingsRepo) Create(ctx context.Context, rating ratings.WalkRating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.ratings[rating.RequestID]; exists {
		return ratings.ErrConflict
	}
	r.store.ratings[rating.RequestID] = rating
	return nil
}

func (r *ratingsRepo) GetByRequest(ctx context.Context, requestID string) (ratings.WalkRating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rt, ok := r.store.ratings[requestID]
	if !ok {
		return ratings.WalkRating{}, ratings.ErrNotFound
	}
	return rt, nil
}

func (r *ratingsRepo) StatsByWalker(ctx context.Context, walkerID string) (ratings.WalkerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.statsLocked(walkerID), nil
}

func (r *ratingsRepo) ListStats(ctx context.Context) ([]ratings.WalkerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]ratings.WalkerStats, 0)
	for _, u := range r.store.users {
		if u.Role != users.RoleWalker {
			continue
		}
		out = append(out, r.statsLocked(u.ID))
	}
	return out, nil
}

// statsLocked asume el lock tomado. completedWalks cuenta solicitudes
// completed con postulación accepted del walker, tenga o no calificación.
func (r *ratingsRepo) statsLocked(walkerID string) ratings.WalkerStats {
	st := ratings.WalkerStats{WalkerID: walkerID}

	for _, rt := range r.store.ratings {
		if rt.WalkerID == walkerID {
			st.TotalRatings++
			st.RatingSum += rt.Rating
		}
	}

	for _, app := range r.store.applications {
		if app.WalkerID != walkerID || app.Status != matching.StatusAccepted {
			continue
		}
		if wr, ok := r.store.requests[app.RequestID]; ok && wr.Status == walks.StatusCompleted {
			st.CompletedWalks++
		}
	}
	return st
}
