package audit

import "time"

// Action son las acciones de calendario que quedan registradas.
type Action string

const (
	ActionCreateEvent  Action = "createEvent"
	ActionEditEvent    Action = "editEvent"
	ActionApproveEvent Action = "approveEvent"
	ActionRejectEvent  Action = "rejectEvent"
	ActionCancelEvent  Action = "cancelEvent"
)

// Entry es una línea del registro de auditoría.
type Entry struct {
	ID        string
	UserID    string
	Action    Action
	EventID   string
	Notes     string
	Timestamp time.Time
}
