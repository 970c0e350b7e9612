package approvals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"academic-scheduler/internal/domain/scheduling"
	"academic-scheduler/internal/middleware"
	"academic-scheduler/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/events/{eventID}/approve", approveEventHandler(svc))
	r.Post("/events/{eventID}/reject", rejectEventHandler(svc))
	r.Post("/events/{eventID}/cancel", cancelEventHandler(svc))
}

type transitionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// approveEventHandler godoc
// @Summary Aprobar un evento
// @Description pending → approved. Re-aprobar un evento ya aprobado responde 200 sin cambios. Solo department_assistant y administrator.
// @Tags approvals
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} transitionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 409 {string} string "invalid state for transition"
// @Failure 503 {string} string "event store unavailable"
// @Router /events/{eventID}/approve [post]
func approveEventHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Approve)
}

// rejectEventHandler godoc
// @Summary Rechazar un evento
// @Description pending → rejected. El intervalo del evento queda liberado. Solo department_assistant y administrator.
// @Tags approvals
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} transitionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 409 {string} string "invalid state for transition"
// @Failure 503 {string} string "event store unavailable"
// @Router /events/{eventID}/reject [post]
func rejectEventHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Reject)
}

// cancelEventHandler godoc
// @Summary Cancelar un evento
// @Description Cualquier estado salvo cancelled → cancelled. Permitido al creador del evento o a un rol aprobador.
// @Tags approvals
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} transitionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 409 {string} string "invalid state for transition"
// @Failure 503 {string} string "event store unavailable"
// @Router /events/{eventID}/cancel [post]
func cancelEventHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Cancel)
}

func transitionHandler(apply func(context.Context, auth.Claims, string) (scheduling.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := apply(r.Context(), claims, chi.URLParam(r, "eventID"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, transitionResponse{ID: e.ID, Status: string(e.Status)})
	}
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, scheduling.ErrStoreUnavailable):
		http.Error(w, "event store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
