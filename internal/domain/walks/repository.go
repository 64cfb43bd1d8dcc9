package walks

import "context"

type Repository interface {
	Create(ctx context.Context, wr WalkRequest) error
	GetByID(ctx context.Context, id string) (WalkRequest, error)

	// Cancel pasa la solicitud a cancelled y rechaza sus postulaciones
	// pendientes en la misma unidad atómica. ErrNotFound si no existe;
	// ErrBadState si el estado no es open/pending.
	Cancel(ctx context.Context, id string) error

	// Complete es un update condicional accepted -> completed.
	// ErrNotFound si no existe; ErrBadState si no estaba accepted.
	Complete(ctx context.Context, id string) error

	// ListFeed devuelve solicitudes open/pending con datos de perro y dueño,
	// ordenadas por requested_time descendente. ownerID vacío = sin filtro.
	ListFeed(ctx context.Context, ownerID string) ([]FeedItem, error)
}
