package matching

import "context"

// Repository es la parte del gateway que exige atomicidad real: Apply y
// Accept tocan la solicitud y sus postulaciones como una sola unidad
// (transacción con lock de fila en Postgres, un mutex en memoria).
type Repository interface {
	// Apply inserta la postulación en pending y, si la solicitud estaba open,
	// la pasa a pending en el mismo paso. Errores:
	//   ErrNotFound  solicitud inexistente
	//   ErrBadState  solicitud fuera de open/pending
	//   ErrConflict  el walker ya tiene postulación no rechazada acá
	Apply(ctx context.Context, app WalkApplication) error

	// Accept hace, todo o nada: la postulación elegida pasa a accepted, las
	// hermanas pendientes a rejected y la solicitud a accepted. Solo gana si
	// al momento del commit la solicitud y la postulación siguen pending.
	// Errores:
	//   ErrNotFound  solicitud inexistente, o la postulación no es de esta solicitud
	//   ErrConflict  la solicitud ya está accepted (otro accept ganó la carrera)
	//   ErrBadState  solicitud open/completed/cancelled, o postulación no pending
	Accept(ctx context.Context, requestID, applicationID string) error

	GetByID(ctx context.Context, id string) (WalkApplication, error)
	ListByRequest(ctx context.Context, requestID string) ([]WalkApplication, error)

	// AcceptedByRequest devuelve la postulación accepted de la solicitud,
	// ErrNotFound si no hay.
	AcceptedByRequest(ctx context.Context, requestID string) (WalkApplication, error)
}
