package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventType define los tipos de evento académico soportados.
type EventType string

const (
	EventTypeLecture EventType = "lecture"
	EventTypeLabwork EventType = "labwork"
	EventTypeExam    EventType = "exam"
)

func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeLecture, EventTypeLabwork, EventTypeExam:
		return true
	default:
		return false
	}
}

// Status es el estado de ciclo de vida de un evento.
// rejected y cancelled son terminales: dejan de ocupar su intervalo.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal indica si el estado libera el intervalo del evento.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// ResourceKind identifica el recurso escaso por el que compiten los eventos.
type ResourceKind string

const (
	ResourceTutor ResourceKind = "tutor"
	ResourceRoom  ResourceKind = "room"
)

// TimeOfDay es una hora de pared local, en minutos desde medianoche.
// Sin zonas horarias: todo el calendario vive en hora local.
type TimeOfDay int

var errBadTime = errors.New("time must be HH:MM")

// ParseTimeOfDay parsea "HH:MM" (el formato que usa el frontend).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, errBadTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errBadTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, errBadTime
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Date es una clave de día "YYYY-MM-DD".
type Date string

var errBadDate = errors.New("date must be YYYY-MM-DD")

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", errBadDate
	}
	return Date(s), nil
}

// BusyInterval es un intervalo ya ocupado para un (recurso, fecha).
// Valor derivado: siempre se recalcula desde los eventos vivos, nunca se persiste.
type BusyInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}
