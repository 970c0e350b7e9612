package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"academic-scheduler/internal/middleware"
	"academic-scheduler/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/audit/logs", listLogsHandler(svc))
}

type entryResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	EventID   string `json:"event_id"`
	Notes     string `json:"notes,omitempty"`
	Timestamp string `json:"timestamp"`
}

// listLogsHandler godoc
// @Summary Listar el log de auditoría
// @Description Entradas más recientes primero. Solo administrator.
// @Tags audit
// @Produce json
// @Param limit query int false "máximo de entradas (default 100, tope 500)"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "audit store unavailable"
// @Router /audit/logs [get]
func listLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleAdministrator {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := svc.List(r.Context(), limit)
		if err != nil {
			http.Error(w, "audit store unavailable", http.StatusServiceUnavailable)
			return
		}

		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryResponse{
				ID:        e.ID,
				UserID:    e.UserID,
				Action:    string(e.Action),
				EventID:   e.EventID,
				Notes:     e.Notes,
				Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
