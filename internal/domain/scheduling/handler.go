package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"

	"academic-scheduler/internal/domain/directory"
	"academic-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, dirSvc *directory.Service) {
	r.Post("/events", proposeEventHandler(svc, dirSvc))
	r.Put("/events/{eventID}", editEventHandler(svc, dirSvc))
	r.Get("/events/{eventID}", getEventHandler(svc, dirSvc))
	r.Get("/rooms/available", availableRoomsHandler(svc))
	r.Get("/tutors/{tutorID}/schedules", tutorScheduleHandler(svc))
}

// proposeEventRequest es el cuerpo para proponer un evento.
// Tiempos en HH:MM, fecha en YYYY-MM-DD. room es opcional: sin sala, el
// motor responde con las salas libres en vez de persistir.
type proposeEventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Course    string `json:"course"`
	Tutor     string `json:"tutor"`
	Room      string `json:"room"`
	EventType string `json:"event_type" enums:"lecture,labwork,exam"`
	Notes     string `json:"notes"`
}

// eventResponse representa un evento devuelto por la API, con los nombres
// de display resueltos contra el directorio (best-effort).
type eventResponse struct {
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
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	CreatedBy  string `json:"created_by"`
}

type roomResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// needsRoomResponse: segunda fase de la selección diferida de sala.
type needsRoomResponse struct {
	NeedsRoomSelection bool           `json:"needs_room_selection"`
	FreeRooms          []roomResponse `json:"free_rooms"`
}

// proposeEventHandler godoc
// @Summary Proponer un evento académico
// @Description Valida la propuesta (tutor habilitado, agenda del tutor, agenda de la sala) y la persiste con estado pending. Sin `room`, devuelve las salas libres para que el cliente reenvíe eligiendo una. Solo academic_assistant y administrator. Autenticación: `X-Debug-User-ID`/`X-Debug-Role` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Accept json
// @Produce json
// @Param payload body proposeEventRequest true "Propuesta; date en YYYY-MM-DD, horas en HH:MM"
// @Success 201 {object} eventResponse
// @Success 200 {object} needsRoomResponse "sin sala: selección diferida"
// @Failure 400 {string} string "invalid json / campos inválidos / tutor no habilitado"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "conflicto de tutor o de sala / sin salas libres"
// @Failure 503 {string} string "event store unavailable"
// @Router /events [post]
func proposeEventHandler(svc *Service, dirSvc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req proposeEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := ParseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start, err := ParseTimeOfDay(req.StartTime)
		if err != nil {
			http.Error(w, "start_time must be HH:MM", http.StatusBadRequest)
			return
		}
		end, err := ParseTimeOfDay(req.EndTime)
		if err != nil {
			http.Error(w, "end_time must be HH:MM", http.StatusBadRequest)
			return
		}

		res, err := svc.Propose(r.Context(), claims, ProposeInput{
			Title:    req.Title,
			Date:     date,
			Start:    start,
			End:      end,
			CourseID: req.Course,
			TutorID:  req.Tutor,
			RoomID:   req.Room,
			Type:     EventType(req.EventType),
			Notes:    req.Notes,
		})
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		if res.FreeRooms != nil {
			out := needsRoomResponse{NeedsRoomSelection: true, FreeRooms: make([]roomResponse, 0, len(res.FreeRooms))}
			for _, room := range res.FreeRooms {
				out.FreeRooms = append(out.FreeRooms, roomResponse{ID: room.ID, Name: room.Name})
			}
			writeJSON(w, http.StatusOK, out)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(r, dirSvc, *res.Event))
	}
}

// editEventRequest: campos opcionales, los ausentes no cambian.
type editEventRequest struct {
	Title     *string `json:"title"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Room      *string `json:"room"`
	EventType *string `json:"event_type"`
	Notes     *string `json:"notes"`
}

// editEventHandler godoc
// @Summary Editar un evento
// @Description Edición parcial de un evento no terminal; re-valida conflictos excluyendo al propio evento de su ocupación. Mismo gating de rol que la creación.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body editEventRequest true "Campos a cambiar"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 409 {string} string "conflicto de tutor o de sala"
// @Failure 503 {string} string "event store unavailable"
// @Router /events/{eventID} [put]
func editEventHandler(svc *Service, dirSvc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req editEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := EditInput{
			Title:  req.Title,
			RoomID: req.Room,
			Notes:  req.Notes,
		}

		if req.Date != nil {
			d, err := ParseDate(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}
		if req.StartTime != nil {
			t, err := ParseTimeOfDay(*req.StartTime)
			if err != nil {
				http.Error(w, "start_time must be HH:MM", http.StatusBadRequest)
				return
			}
			in.Start = &t
		}
		if req.EndTime != nil {
			t, err := ParseTimeOfDay(*req.EndTime)
			if err != nil {
				http.Error(w, "end_time must be HH:MM", http.StatusBadRequest)
				return
			}
			in.End = &t
		}
		if req.EventType != nil {
			et := EventType(*req.EventType)
			in.Type = &et
		}

		e, err := svc.Edit(r.Context(), claims, chi.URLParam(r, "eventID"), in)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(r, dirSvc, e))
	}
}

// getEventHandler godoc
// @Summary Obtener un evento por id
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service, dirSvc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeSchedulingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(r, dirSvc, e))
	}
}

type busyIntervalResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// availableRoomsHandler godoc
// @Summary Salas libres para un intervalo
// @Description Devuelve las salas sin ningún evento no terminal que se superponga con [start, end) en la fecha dada.
// @Tags directory
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Param start query string true "HH:MM"
// @Param end query string true "HH:MM"
// @Success 200 {array} roomResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 503 {string} string "event store unavailable"
// @Router /rooms/available [get]
func availableRoomsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		date, err := ParseDate(q.Get("date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start, err := ParseTimeOfDay(q.Get("start"))
		if err != nil {
			http.Error(w, "start must be HH:MM", http.StatusBadRequest)
			return
		}
		end, err := ParseTimeOfDay(q.Get("end"))
		if err != nil {
			http.Error(w, "end must be HH:MM", http.StatusBadRequest)
			return
		}
		if start >= end {
			http.Error(w, "start must be before end", http.StatusBadRequest)
			return
		}

		rooms, err := svc.FreeRooms(r.Context(), date, start, end)
		if err != nil {
			writeSchedulingError(w, err)
			return
		}
		out := make([]roomResponse, 0, len(rooms))
		for _, room := range rooms {
			out = append(out, roomResponse{ID: room.ID, Name: room.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// tutorScheduleHandler godoc
// @Summary Ocupación de un tutor en una fecha
// @Description Intervalos ocupados del tutor ese día, solo eventos no terminales.
// @Tags directory
// @Produce json
// @Param tutorID path string true "ID del tutor"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} busyIntervalResponse
// @Failure 400 {string} string "date inválida"
// @Failure 503 {string} string "event store unavailable"
// @Router /tutors/{tutorID}/schedules [get]
func tutorScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		busy, err := svc.BusyIntervalsFor(r.Context(), ResourceTutor, chi.URLParam(r, "tutorID"), date, "")
		if err != nil {
			writeSchedulingError(w, err)
			return
		}
		out := make([]busyIntervalResponse, 0, len(busy))
		for _, b := range busy {
			out = append(out, busyIntervalResponse{StartTime: b.Start.String(), EndTime: b.End.String()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeSchedulingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnassignedTutor):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrTutorConflict), errors.Is(err, ErrRoomConflict), errors.Is(err, ErrNoRoomAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrStoreUnavailable):
		http.Error(w, "event store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEventResponse(r *http.Request, dirSvc *directory.Service, e Event) eventResponse {
	out := eventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Date:      string(e.Date),
		StartTime: e.Start.String(),
		EndTime:   e.End.String(),
		CourseID:  e.CourseID,
		TutorID:   e.TutorID,
		RoomID:    e.RoomID,
		EventType: string(e.Type),
		Notes:     e.Notes,
		Status:    string(e.Status),
		CreatedBy: e.CreatedBy,
	}

	ctx := r.Context()
	if c, err := dirSvc.GetCourse(ctx, e.CourseID); err == nil {
		out.CourseName = c.Name
	}
	if t, err := dirSvc.GetTutor(ctx, e.TutorID); err == nil {
		out.TutorName = t.Name
	}
	if e.RoomID != "" {
		if room, err := dirSvc.GetRoom(ctx, e.RoomID); err == nil {
			out.RoomName = room.Name
		}
	}
	return out
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// si sigue repitiéndose, recién entonces conviene extraerlo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
