package scheduling

import "context"

// Filter son filtros conjuntivos para consultas de rango (proyección de calendario).
type Filter struct {
	TutorID       string
	CourseID      string
	Type          EventType
	ExcludeStatus Status
}

// Repository es el Event Store: la única tabla autoritativa de eventos.
// Solo el motor de planificación y el workflow de aprobación escriben en él.
// Las implementaciones devuelven ErrNotFound para ids inexistentes; cualquier
// otro fallo se trata como infraestructura (StoreUnavailable).
type Repository interface {
	Create(ctx context.Context, e Event) error
	Update(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)

	// ListForResource devuelve los eventos NO terminales que ocupan al recurso
	// en la fecha dada, excluyendo opcionalmente un id (re-validación de un
	// edit contra sí mismo). El orden no es significativo.
	ListForResource(ctx context.Context, kind ResourceKind, resourceID string, date Date, excludeID string) ([]Event, error)

	// ListInRange devuelve eventos con from <= date <= to que pasan el filtro,
	// ordenados por fecha y hora de inicio.
	ListInRange(ctx context.Context, from, to Date, f Filter) ([]Event, error)
}
