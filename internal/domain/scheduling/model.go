package scheduling

import "time"

// Event es la entidad central: una reserva de tutor + sala para un curso.
type Event struct {
	ID string

	Title string
	Date  Date
	Start TimeOfDay
	End   TimeOfDay

	CourseID string
	TutorID  string
	RoomID   string // vacío hasta que se asigne sala

	Type  EventType
	Notes string

	Status Status

	CreatedBy string // quien propuso el evento; puede cancelarlo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Busy es el intervalo que el evento ocupa en su fecha.
func (e Event) Busy() BusyInterval {
	return BusyInterval{Start: e.Start, End: e.End}
}
