package matching

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
	r.Route("/walks/{requestID}/applications", func(ar chi.Router) {
		ar.Post("/", applyHandler(svc, mc))
		ar.Get("/", listApplicationsHandler(svc))
		ar.Post("/{applicationID}/accept", acceptHandler(svc, mc))
	})
}

type applicationResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	WalkerID  string    `json:"walker_id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

func applyHandler(svc *Service, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		app, err := svc.Apply(r.Context(), claims.UserID, chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}

		mc.RecordApplication()
		writeJSON(w, http.StatusCreated, toApplicationResponse(app))
	}
}

func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByRequest(r.Context(), claims.UserID, chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, app := range items {
			out = append(out, toApplicationResponse(app))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func acceptHandler(svc *Service, mc *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "requestID")
		applicationID := chi.URLParam(r, "applicationID")

		if err := svc.Accept(r.Context(), claims.UserID, requestID, applicationID); err != nil {
			if errors.Is(err, ErrConflict) {
				mc.RecordAcceptConflict()
			}
			writeError(w, err)
			return
		}

		mc.RecordAcceptWon()

		app, err := svc.repo.GetByID(r.Context(), applicationID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(app))
	}
}

func toApplicationResponse(app WalkApplication) applicationResponse {
	return applicationResponse{
		ID:        app.ID,
		RequestID: app.RequestID,
		WalkerID:  app.WalkerID,
		Status:    string(app.Status),
		AppliedAt: app.AppliedAt,
	}
}

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
		http.Error(w, "conflict", http.StatusConflict)
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
