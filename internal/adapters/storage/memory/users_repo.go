package memory

import (
	"context"

	"dogwalks/internal/domain/users"
)

type usersRepo struct {
	store *Store
}

func NewUsersRepo(store *Store) users.Repository {
	return &usersRepo{store: store}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[u.ID]; exists {
		return users.ErrConflict
	}
	for _, existing := range r.store.users {
		if existing.Username == u.Username {
			return users.ErrConflict
		}
	}
	r.store.users[u.ID] = u
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}
