package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/courses", listCoursesHandler(svc))
	r.Get("/courses/{courseID}/tutors", listCourseTutorsHandler(svc))
	r.Get("/tutors", listTutorsHandler(svc))
	r.Get("/rooms", listRoomsHandler(svc))
}

type courseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

type tutorResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
}

type roomItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listCoursesHandler godoc
// @Summary Listar cursos
// @Tags directory
// @Produce json
// @Success 200 {array} courseResponse
// @Router /courses [get]
func listCoursesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := svc.ListCourses(r.Context())
		if err != nil {
			http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
			return
		}
		out := make([]courseResponse, 0, len(courses))
		for _, c := range courses {
			out = append(out, courseResponse{ID: c.ID, Name: c.Name, Year: c.Year})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listCourseTutorsHandler godoc
// @Summary Listar tutores habilitados para un curso
// @Tags directory
// @Produce json
// @Param courseID path string true "ID del curso"
// @Success 200 {array} tutorResponse
// @Failure 400 {string} string "courseID requerido"
// @Router /courses/{courseID}/tutors [get]
func listCourseTutorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tutors, err := svc.ListTutorsByCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "courseID is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
			return
		}
		out := make([]tutorResponse, 0, len(tutors))
		for _, t := range tutors {
			out = append(out, tutorResponse{ID: t.ID, Name: t.Name, Courses: t.CourseIDs})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listTutorsHandler godoc
// @Summary Listar todos los tutores
// @Tags directory
// @Produce json
// @Success 200 {array} tutorResponse
// @Router /tutors [get]
func listTutorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tutors, err := svc.ListTutors(r.Context())
		if err != nil {
			http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
			return
		}
		out := make([]tutorResponse, 0, len(tutors))
		for _, t := range tutors {
			out = append(out, tutorResponse{ID: t.ID, Name: t.Name, Courses: t.CourseIDs})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listRoomsHandler godoc
// @Summary Listar salas
// @Tags directory
// @Produce json
// @Success 200 {array} roomItemResponse
// @Router /rooms [get]
func listRoomsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := svc.ListRooms(r.Context())
		if err != nil {
			http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
			return
		}
		out := make([]roomItemResponse, 0, len(rooms))
		for _, room := range rooms {
			out = append(out, roomItemResponse{ID: room.ID, Name: room.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
