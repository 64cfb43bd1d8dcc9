package walks

import "time"

// Status del ciclo de vida de una solicitud de paseo.
// @Enum open, pending, accepted, completed, cancelled
type Status string

const (
	StatusOpen      Status = "open"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal indica si el estado ya no admite transiciones.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition valida el grafo de transiciones:
//
//	open -> pending          (primera postulación)
//	pending -> accepted      (el owner acepta una postulación)
//	open|pending -> cancelled
//	accepted -> completed
//
// Cualquier otra combinación es ilegal y el registro queda como estaba.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusOpen:
		return to == StatusPending || to == StatusCancelled
	case StatusPending:
		return to == StatusAccepted || to == StatusCancelled
	case StatusAccepted:
		return to == StatusCompleted
	default:
		return false
	}
}

// WalkRequest es la entidad central. El dueño sale transitivamente del perro;
// el walker asignado se deriva de la postulación aceptada (no hay walker_id acá).
type WalkRequest struct {
	ID    string
	DogID string

	RequestedTime   time.Time
	DurationMinutes int
	Location        string

	Status Status

	CreatedAt time.Time
}

// FeedItem es la vista del feed: solicitud + datos visibles del perro y su dueño.
type FeedItem struct {
	RequestID       string
	DogID           string
	DogName         string
	DogSize         string
	OwnerID         string
	OwnerName       string
	RequestedTime   time.Time
	DurationMinutes int
	Location        string
	Status          Status
	CreatedAt       time.Time
}
