package walks

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
	r.Route("/walks", func(wr chi.Router) {
		wr.Post("/", createWalkHandler(svc, mc))
		wr.Get("/", listFeedHandler(svc))
		wr.Get("/{requestID}", getWalkHandler(svc))
		wr.Post("/{requestID}/cancel", cancelWalkHandler(svc))
		wr.Post("/{requestID}/complete", completeWalkHandler(svc))
	})
}

type createWalkRequest struct {
	DogID           string `json:"dog_id"`
	RequestedTime   string `json:"requested_time"` // RFC3339
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location"`
}

type walkResponse struct {
	ID              string    `json:"id"`
	DogID           string    `json:"dog_id"`
	RequestedTime   time.Time `json:"requested_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type feedItemResponse struct {
	RequestID       string    `json:"request_id"`
	DogID           string    `json:"dog_id"`
	DogName         string    `json:"dog_name"`
	DogSize         string    `json:"dog_size"`
	OwnerID         string    `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	RequestedTime   time.Time `json:"requested_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
}

func createWalkHandler(svc *Service, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createWalkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.RequestedTime))
		if err != nil {
			http.Error(w, "requested_time must be RFC3339", http.StatusBadRequest)
			return
		}

		wr, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			DogID:           req.DogID,
			RequestedTime:   rt,
			DurationMinutes: req.DurationMinutes,
			Location:        req.Location,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		mc.RecordRequestCreated()
		writeJSON(w, http.StatusCreated, toWalkResponse(wr))
	}
}

func listFeedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListFeed(r.Context(), claims.Role, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]feedItemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, feedItemResponse{
				RequestID:       it.RequestID,
				DogID:           it.DogID,
				DogName:         it.DogName,
				DogSize:         it.DogSize,
				OwnerID:         it.OwnerID,
				OwnerName:       it.OwnerName,
				RequestedTime:   it.RequestedTime,
				DurationMinutes: it.DurationMinutes,
				Location:        it.Location,
				Status:          string(it.Status),
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getWalkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		wr, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			http.Error(w, "walk request not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toWalkResponse(wr))
	}
}

func cancelWalkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		if err := svc.Cancel(r.Context(), claims.UserID, requestID); err != nil {
			writeError(w, err)
			return
		}

		wr, err := svc.GetByID(r.Context(), requestID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toWalkResponse(wr))
	}
}

// completeWalkHandler limita el complete al dueño de la solicitud;
// la regla de transición vive en el service/repo.
func completeWalkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")

		wr, err := svc.GetByID(r.Context(), requestID)
		if err != nil {
			http.Error(w, "walk request not found", http.StatusNotFound)
			return
		}
		owner, err := svc.dogs.OwnerOf(r.Context(), wr.DogID)
		if err != nil || owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Complete(r.Context(), requestID); err != nil {
			writeError(w, err)
			return
		}

		wr, err = svc.GetByID(r.Context(), requestID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toWalkResponse(wr))
	}
}

func toWalkResponse(wr WalkRequest) walkResponse {
	return walkResponse{
		ID:              wr.ID,
		DogID:           wr.DogID,
		RequestedTime:   wr.RequestedTime,
		DurationMinutes: wr.DurationMinutes,
		Location:        wr.Location,
		Status:          string(wr.Status),
		CreatedAt:       wr.CreatedAt,
	}
}

// writeError mapea los sentinels del módulo a un status estable.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "walk request not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, "operation not allowed in current state", http.StatusConflict)
	case errors.Is(err, ErrTimeout):
		http.Error(w, "storage timeout", http.StatusGatewayTimeout)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
