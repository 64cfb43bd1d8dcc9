package memory

import (
	"context"
	"errors"
	"sort"

	"dogwalks/internal/domain/dogs"
)

type dogsRepo struct {
	store *Store
}

func NewDogsRepo(store *Store) dogs.Repository {
	return &dogsRepo{store: store}
}

func (r *dogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.dogs[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.store.dogs[d.ID] = d
	return nil
}

func (r *dogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.dogs[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogsRepo) ListByOwner(ctx context.Context, ownerID string) ([]dogs.Dog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.store.dogs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
