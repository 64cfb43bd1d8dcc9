package matching

import "time"

// Status de una postulación.
// @Enum pending, accepted, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// WalkApplication es la postulación de un walker a una solicitud.
// Invariante del sistema: por solicitud hay a lo sumo UNA accepted;
// al aceptar una, las hermanas pendientes pasan a rejected.
type WalkApplication struct {
	ID        string
	RequestID string
	WalkerID  string

	Status Status

	AppliedAt time.Time
}
