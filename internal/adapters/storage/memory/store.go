package memory

import (
	"sync"

	"dogwalks/internal/domain/dogs"
	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/ratings"
	"dogwalks/internal/domain/users"
	"dogwalks/internal/domain/walks"
)

// Store agrupa todas las entidades bajo un mismo RWMutex. Apply, Accept y
// Cancel tocan solicitudes y postulaciones juntas, así que el lock tiene que
// ser compartido para dar la misma atomicidad que una transacción.
type Store struct {
	mu sync.RWMutex

	users        map[string]users.User
	dogs         map[string]dogs.Dog
	requests     map[string]walks.WalkRequest
	applications map[string]matching.WalkApplication
	ratings      map[string]ratings.WalkRating // por requestID
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]users.User),
		dogs:         make(map[string]dogs.Dog),
		requests:     make(map[string]walks.WalkRequest),
		applications: make(map[string]matching.WalkApplication),
		ratings:      make(map[string]ratings.WalkRating),
	}
}
