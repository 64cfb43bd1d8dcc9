package ratings

import "time"

// WalkRating es la calificación que deja el dueño al paseador una vez
// completado el paseo. Una sola por solicitud.
type WalkRating struct {
	ID        string
	RequestID string
	WalkerID  string
	OwnerID   string
	Rating    int
	Comment   string
	RatedAt   time.Time
}

// WalkerSummary agrega el historial de un paseador. AverageRating queda en
// nil cuando todavía no tiene calificaciones (null en JSON, nunca 0.0).
type WalkerSummary struct {
	WalkerID       string
	TotalRatings   int
	AverageRating  *float64
	CompletedWalks int
}
