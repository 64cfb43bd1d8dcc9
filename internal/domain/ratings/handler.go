package ratings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dogwalks/internal/middleware"
	"dogwalks/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, mc *metrics.Collector) {
	r.Post("/walks/{requestID}/rating", rateWalkHandler(svc, mc))
	r.Route("/walkers", func(wr chi.Router) {
		wr.Get("/summary", listSummariesHandler(svc))
		wr.Get("/{walkerID}/summary", getSummaryHandler(svc))
	})
}

type rateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	WalkerID  string    `json:"walker_id"`
	OwnerID   string    `json:"owner_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	RatedAt   time.Time `json:"rated_at"`
}

type summaryResponse struct {
	WalkerID       string   `json:"walker_id"`
	TotalRatings   int      `json:"total_ratings"`
	AverageRating  *float64 `json:"average_rating"`
	CompletedWalks int      `json:"completed_walks"`
}

func rateWalkHandler(svc *Service, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req rateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rating, err := svc.Rate(r.Context(), claims.UserID, chi.URLParam(r, "requestID"), RateInput{
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		mc.RecordRating()
		writeJSON(w, http.StatusCreated, toRatingResponse(rating))
	}
}

func getSummaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context(), chi.URLParam(r, "walkerID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummaryResponse(sum))
	}
}

func listSummariesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sums, err := svc.ListSummaries(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]summaryResponse, 0, len(sums))
		for _, s := range sums {
			out = append(out, toSummaryResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRatingResponse(rt WalkRating) ratingResponse {
	return ratingResponse{
		ID:        rt.ID,
		RequestID: rt.RequestID,
		WalkerID:  rt.WalkerID,
		OwnerID:   rt.OwnerID,
		Rating:    rt.Rating,
		Comment:   rt.Comment,
		RatedAt:   rt.RatedAt,
	}
}

func toSummaryResponse(s WalkerSummary) summaryResponse {
	return summaryResponse{
		WalkerID:       s.WalkerID,
		TotalRatings:   s.TotalRatings,
		AverageRating:  s.AverageRating,
		CompletedWalks: s.CompletedWalks,
	}
}

// writeError mapea los sentinels del módulo a un status estable.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, "operation not allowed in current state", http.StatusConflict)
	case errors.Is(err, ErrConflict):
		http.Error(w, "walk already rated", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
