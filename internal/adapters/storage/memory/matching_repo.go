package memory

import (
	"context"
	"sort"

	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/walks"
)

type matchingRepo struct {
	store *Store
}

func NewMatchingRepo(store *Store) matching.Repository {
	return &matchingRepo{store: store}
}

func (r *matchingRepo) Apply(ctx context.Context, app matching.WalkApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wr, ok := r.store.requests[app.RequestID]
	if !ok {
		return matching.ErrNotFound
	}
	if wr.Status != walks.StatusOpen && wr.Status != walks.StatusPending {
		return matching.ErrBadState
	}

	for _, existing := range r.store.applications {
		if existing.RequestID == app.RequestID &&
			existing.WalkerID == app.WalkerID &&
			existing.Status != matching.StatusRejected {
			return matching.ErrConflict
		}
	}

	r.store.applications[app.ID] = app
	if wr.Status == walks.StatusOpen {
		wr.Status = walks.StatusPending
		r.store.requests[wr.ID] = wr
	}
	return nil
}

// Accept decide al ganador bajo el lock de escritura: con el mutex tomado
// nadie más puede observar un estado intermedio, así que o se aplica todo
// (ganadora accepted, hermanas rejected, solicitud accepted) o nada.
func (r *matchingRepo) Accept(ctx context.Context, requestID, applicationID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wr, ok := r.store.requests[requestID]
	if !ok {
		return matching.ErrNotFound
	}
	app, ok := r.store.applications[applicationID]
	if !ok || app.RequestID != requestID {
		return matching.ErrNotFound
	}

	if wr.Status == walks.StatusAccepted {
		return matching.ErrConflict
	}
	if wr.Status != walks.StatusPending || app.Status != matching.StatusPending {
		return matching.ErrBadState
	}

	app.Status = matching.StatusAccepted
	r.store.applications[app.ID] = app

	for id, sib := range r.store.applications {
		if sib.RequestID == requestID && sib.ID != applicationID && sib.Status == matching.StatusPending {
			sib.Status = matching.StatusRejected
			r.store.applications[id] = sib
		}
	}

	wr.Status = walks.StatusAccepted
	r.store.requests[requestID] = wr
	return nil
}

func (r *matchingRepo) GetByID(ctx context.Context, id string) (matching.WalkApplication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	app, ok := r.store.applications[id]
	if !ok {
		return matching.WalkApplication{}, matching.ErrNotFound
	}
	return app, nil
}

func (r *matchingRepo) ListByRequest(ctx context.Context, requestID string) ([]matching.WalkApplication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]matching.WalkApplication, 0)
	for _, app := range r.store.applications {
		if app.RequestID == requestID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppliedAt.Before(out[j].AppliedAt)
	})
	return out, nil
}

func (r *matchingRepo) AcceptedByRequest(ctx context.Context, requestID string) (matching.WalkApplication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, app := range r.store.applications {
		if app.RequestID == requestID && app.Status == matching.StatusAccepted {
			return app, nil
		}
	}
	return matching.WalkApplication{}, matching.ErrNotFound
}
