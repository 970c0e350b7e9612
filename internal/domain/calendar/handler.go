package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"academic-scheduler/internal/domain/scheduling"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/events", listEventsHandler(svc))
	r.Get("/events/export", exportEventsHandler(svc))
}

type calendarEventResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	CourseID   string `json:"course"`
	CourseName string `json:"course_name,omitempty"`
	TutorID    string `json:"tutor"`
	TutorName  string `json:"tutor_name,omitempty"`
	RoomID     string `json:"room,omitempty"`
	RoomName   string `json:"room_name,omitempty"`
	EventType  string `json:"event_type"`
	Status     string `json:"status"`
}

// listEventsHandler godoc
// @Summary Calendario de eventos en un rango de fechas
// @Description Proyección de solo lectura: eventos con from <= date <= to que pasan todos los filtros dados. `exclude_status` omite un estado (p. ej. cancelled).
// @Tags calendar
// @Produce json
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Param tutor query string false "ID del tutor"
// @Param course query string false "ID del curso"
// @Param type query string false "lecture | labwork | exam"
// @Param exclude_status query string false "pending | approved | rejected | cancelled"
// @Success 200 {array} calendarEventResponse
// @Failure 400 {string} string "rango inválido"
// @Failure 503 {string} string "event store unavailable"
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, f, err := rangeQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		events, err := svc.EventsInRange(r.Context(), from, to, f)
		if err != nil {
			writeCalendarError(w, err)
			return
		}

		out := make([]calendarEventResponse, 0, len(events))
		for _, e := range events {
			courseName, tutorName, roomName := svc.ResolveNames(r.Context(), e)
			out = append(out, calendarEventResponse{
				ID:         e.ID,
				Title:      e.Title,
				Date:       string(e.Date),
				StartTime:  e.Start.String(),
				EndTime:    e.End.String(),
				CourseID:   e.CourseID,
				CourseName: courseName,
				TutorID:    e.TutorID,
				TutorName:  tutorName,
				RoomID:     e.RoomID,
				RoomName:   roomName,
				EventType:  string(e.Type),
				Status:     string(e.Status),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// exportEventsHandler godoc
// @Summary Exportar el calendario como CSV
// @Description Mismo rango y filtros que /events, serializado como CSV descargable.
// @Tags calendar
// @Produce text/csv
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Param tutor query string false "ID del tutor"
// @Param course query string false "ID del curso"
// @Param type query string false "lecture | labwork | exam"
// @Param exclude_status query string false "pending | approved | rejected | cancelled"
// @Success 200 {string} string "CSV"
// @Failure 400 {string} string "rango inválido"
// @Failure 503 {string} string "event store unavailable"
// @Router /events/export [get]
func exportEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, f, err := rangeQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		events, err := svc.EventsInRange(r.Context(), from, to, f)
		if err != nil {
			writeCalendarError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "events_"+string(from)+"_"+string(to)+".csv"))
		if err := svc.WriteCSV(r.Context(), w, events); err != nil {
			// los headers ya salieron; solo queda cortar la respuesta
			return
		}
	}
}

func rangeQuery(r *http.Request) (from, to scheduling.Date, f scheduling.Filter, err error) {
	q := r.URL.Query()

	from, err = scheduling.ParseDate(q.Get("from"))
	if err != nil {
		return "", "", f, errors.New("from must be YYYY-MM-DD")
	}
	to, err = scheduling.ParseDate(q.Get("to"))
	if err != nil {
		return "", "", f, errors.New("to must be YYYY-MM-DD")
	}

	f = scheduling.Filter{
		TutorID:  q.Get("tutor"),
		CourseID: q.Get("course"),
	}
	if t := q.Get("type"); t != "" {
		if !scheduling.ValidEventType(scheduling.EventType(t)) {
			return "", "", f, errors.New("type must be lecture, labwork or exam")
		}
		f.Type = scheduling.EventType(t)
	}
	if st := q.Get("exclude_status"); st != "" {
		f.ExcludeStatus = scheduling.Status(st)
	}
	return from, to, f, nil
}

func writeCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
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
