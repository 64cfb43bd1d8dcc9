package ratings

import "context"

// WalkerStats son los agregados crudos por paseador. El redondeo y el
// promedio nulo se resuelven en el servicio.
type WalkerStats struct {
	WalkerID       string
	TotalRatings   int
	RatingSum      int
	CompletedWalks int
}

type Repository interface {
	// Create persiste la calificación. Devuelve ErrConflict si la solicitud
	// ya fue calificada.
	Create(ctx context.Context, rating WalkRating) error
	GetByRequest(ctx context.Context, requestID string) (WalkRating, error)
	// StatsByWalker devuelve agregados en cero si el paseador no tiene
	// historial todavía.
	StatsByWalker(ctx context.Context, walkerID string) (WalkerStats, error)
	// ListStats devuelve agregados de todos los usuarios con rol walker,
	// incluidos los que aún no tienen paseos.
	ListStats(ctx context.Context) ([]WalkerStats, error)
}
