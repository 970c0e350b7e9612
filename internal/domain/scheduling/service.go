package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"academic-scheduler/internal/domain/audit"
	"academic-scheduler/internal/domain/directory"
	"academic-scheduler/internal/platform/reslock"
	"academic-scheduler/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	// Errores deterministas de reglas de negocio. Nunca se loguean-y-tragan:
	// cada llamada devuelve éxito o uno de estos, clasificado.
	ErrValidation      = errors.New("invalid input")
	ErrUnassignedTutor = errors.New("tutor is not assigned to the course")
	ErrTutorConflict   = errors.New("tutor has a conflicting schedule")
	ErrRoomConflict    = errors.New("room is already booked for that timeframe")
	ErrNoRoomAvailable = errors.New("no room available for the requested window")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("event not found")

	// ErrStoreUnavailable es el único error transitorio: el llamador puede
	// reintentar con backoff. El motor no reintenta internamente para
	// conservar a-lo-sumo-una-escritura por propuesta.
	ErrStoreUnavailable = errors.New("event store unavailable")
)

// Service es el motor de planificación: resuelve identidades contra el
// directorio, consulta intervalos ocupados, valida conflictos y persiste.
type Service struct {
	repo  Repository
	dir   *directory.Service
	locks *reslock.Keyed
	audit *audit.Service // opcional

	now func() time.Time

	mu        sync.Mutex
	listeners []func(Event)
}

func NewService(repo Repository, dir *directory.Service, locks *reslock.Keyed, auditSvc *audit.Service) *Service {
	if locks == nil {
		locks = reslock.New(0)
	}
	return &Service{
		repo:  repo,
		dir:   dir,
		locks: locks,
		audit: auditSvc,
		now:   time.Now,
	}
}

// AddListener registra un interesado en la señal "el calendario cambió".
// Se invoca tras cada persistencia exitosa, best-effort.
func (s *Service) AddListener(fn func(Event)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Service) notify(e Event) {
	s.mu.Lock()
	ls := make([]func(Event), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, fn := range ls {
		fn(e)
	}
}

// ProposeInput es una propuesta de evento. RoomID vacío difiere la elección
// de sala: el motor responde con las salas libres en la ventana pedida.
type ProposeInput struct {
	Title    string
	Date     Date
	Start    TimeOfDay
	End      TimeOfDay
	CourseID string
	TutorID  string
	RoomID   string
	Type     EventType
	Notes    string
}

// ProposeResult: o bien Event quedó persistido en pending, o bien FreeRooms
// trae las salas sin solapamiento para que el llamador reenvíe eligiendo una.
type ProposeResult struct {
	Event     *Event
	FreeRooms []directory.Room
}

// Propose valida y persiste una propuesta con estado pending.
// Orden de validación (fail fast, cada fallo se reporta distinto):
// campos requeridos, start < end, tutor dicta el curso, agenda del tutor,
// agenda de la sala (o cómputo de salas libres si no vino sala).
func (s *Service) Propose(ctx context.Context, actor auth.Claims, in ProposeInput) (ProposeResult, error) {
	if err := canSchedule(actor); err != nil {
		return ProposeResult{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.TutorID = strings.TrimSpace(in.TutorID)
	in.CourseID = strings.TrimSpace(in.CourseID)
	in.RoomID = strings.TrimSpace(in.RoomID)

	if in.Title == "" || in.Date == "" || in.CourseID == "" || in.TutorID == "" || !ValidEventType(in.Type) {
		return ProposeResult{}, ErrValidation
	}
	if in.Start >= in.End {
		return ProposeResult{}, ErrValidation
	}

	now := s.now()
	e := Event{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Date:      in.Date,
		Start:     in.Start,
		End:       in.End,
		CourseID:  in.CourseID,
		TutorID:   in.TutorID,
		RoomID:    in.RoomID,
		Type:      in.Type,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    StatusPending,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Serialización por (recurso, fecha): la lectura de ocupación y la
	// escritura posterior no pueden intercalarse con otro escritor del
	// mismo recurso/fecha (race clásica check-then-act).
	release, err := s.locks.Acquire(ctx, resourceKeys(e)...)
	if err != nil {
		return ProposeResult{}, lockErr(err)
	}
	defer release()

	res, err := s.validateAgainstSchedules(ctx, e, "")
	if err != nil || res.FreeRooms != nil {
		return res, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return ProposeResult{}, storeErr(err)
	}

	s.recordAudit(ctx, actor.UserID, audit.ActionCreateEvent, e.ID, e.Title)
	s.notify(e)
	return ProposeResult{Event: &e}, nil
}

// EditInput: campos opcionales; nil deja el valor actual.
type EditInput struct {
	Title  *string
	Date   *Date
	Start  *TimeOfDay
	End    *TimeOfDay
	RoomID *string
	Type   *EventType
	Notes  *string
}

// Edit re-valida el evento editado excluyéndose de su propia ocupación y
// lo actualiza en el lugar (mismo id, mismo estado).
func (s *Service) Edit(ctx context.Context, actor auth.Claims, eventID string, in EditInput) (Event, error) {
	if err := canSchedule(actor); err != nil {
		return Event{}, err
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return Event{}, ErrValidation
	}

	// Lock por evento antes de leer: el workflow de aprobación muta Status
	// bajo esta misma clave, y el Update de abajo escribe la fila completa.
	// Sin esto, un Approve entre la lectura y el Update quedaría pisado.
	releaseEvt, err := s.locks.Acquire(ctx, "event/"+eventID)
	if err != nil {
		return Event{}, lockErr(err)
	}
	defer releaseEvt()

	current, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return Event{}, notFoundOrStore(err)
	}
	if current.Status.Terminal() {
		return Event{}, ErrValidation
	}

	e := current
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Start != nil {
		e.Start = *in.Start
	}
	if in.End != nil {
		e.End = *in.End
	}
	if in.RoomID != nil {
		e.RoomID = strings.TrimSpace(*in.RoomID)
	}
	if in.Type != nil {
		e.Type = *in.Type
	}
	if in.Notes != nil {
		e.Notes = strings.TrimSpace(*in.Notes)
	}

	if e.Title == "" || e.Date == "" || !ValidEventType(e.Type) {
		return Event{}, ErrValidation
	}
	if e.Start >= e.End {
		return Event{}, ErrValidation
	}

	// Bloquea los recursos nuevos y los viejos: mover un evento de sala
	// compite por ambas fechas/salas. Orden global estable (clave de evento
	// primero, recursos después; Propose solo toma recursos y el workflow
	// solo claves de evento), así que no hay ciclo posible.
	keys := append(resourceKeys(e), resourceKeys(current)...)
	release, err := s.locks.Acquire(ctx, keys...)
	if err != nil {
		return Event{}, lockErr(err)
	}
	defer release()

	if _, err := s.validateAgainstSchedules(ctx, e, e.ID); err != nil {
		return Event{}, err
	}

	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, storeErr(err)
	}

	s.recordAudit(ctx, actor.UserID, audit.ActionEditEvent, e.ID, e.Title)
	s.notify(e)
	return e, nil
}

// GetByID expone la lectura puntual para handlers y workflow.
func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Event{}, notFoundOrStore(err)
	}
	return e, nil
}

// BusyIntervalsFor es el índice de disponibilidad: intervalos ocupados por
// eventos no terminales del recurso en la fecha, excluyendo opcionalmente
// un evento (re-validación de edits).
func (s *Service) BusyIntervalsFor(ctx context.Context, kind ResourceKind, resourceID string, date Date, excludeID string) ([]BusyInterval, error) {
	items, err := s.repo.ListForResource(ctx, kind, resourceID, date, excludeID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]BusyInterval, 0, len(items))
	for _, e := range items {
		out = append(out, e.Busy())
	}
	return out, nil
}

// FreeRooms devuelve todas las salas del directorio sin solapamiento en la
// ventana pedida (segunda fase de la selección diferida de sala).
func (s *Service) FreeRooms(ctx context.Context, date Date, start, end TimeOfDay) ([]directory.Room, error) {
	if start >= end {
		return nil, ErrValidation
	}
	return s.freeRooms(ctx, date, start, end, "")
}

func (s *Service) freeRooms(ctx context.Context, date Date, start, end TimeOfDay, excludeID string) ([]directory.Room, error) {
	rooms, err := s.dir.ListRooms(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	free := make([]directory.Room, 0, len(rooms))
	for _, room := range rooms {
		busy, err := s.BusyIntervalsFor(ctx, ResourceRoom, room.ID, date, excludeID)
		if err != nil {
			return nil, err
		}
		if !Overlaps(start, end, busy) {
			free = append(free, room)
		}
	}
	return free, nil
}

// validateAgainstSchedules ejecuta los pasos 3-5 del orden de validación
// sobre un evento ya normalizado. Con excludeID, el evento no se cuenta a
// sí mismo como ocupación.
func (s *Service) validateAgainstSchedules(ctx context.Context, e Event, excludeID string) (ProposeResult, error) {
	teaches, err := s.dir.TutorTeaches(ctx, e.TutorID, e.CourseID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrInvalidInput) {
			return ProposeResult{}, ErrValidation
		}
		return ProposeResult{}, storeErr(err)
	}
	if !teaches {
		return ProposeResult{}, ErrUnassignedTutor
	}

	tutorBusy, err := s.BusyIntervalsFor(ctx, ResourceTutor, e.TutorID, e.Date, excludeID)
	if err != nil {
		return ProposeResult{}, err
	}
	if Overlaps(e.Start, e.End, tutorBusy) {
		return ProposeResult{}, ErrTutorConflict
	}

	if e.RoomID == "" {
		if excludeID != "" {
			// edit sin sala: nada más que validar
			return ProposeResult{}, nil
		}
		free, err := s.freeRooms(ctx, e.Date, e.Start, e.End, "")
		if err != nil {
			return ProposeResult{}, err
		}
		if len(free) == 0 {
			return ProposeResult{}, ErrNoRoomAvailable
		}
		// No persistimos: el llamador debe reenviar con una sala del set.
		return ProposeResult{FreeRooms: free}, nil
	}

	if _, err := s.dir.GetRoom(ctx, e.RoomID); err != nil {
		if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrInvalidInput) {
			return ProposeResult{}, ErrValidation
		}
		return ProposeResult{}, storeErr(err)
	}

	roomBusy, err := s.BusyIntervalsFor(ctx, ResourceRoom, e.RoomID, e.Date, excludeID)
	if err != nil {
		return ProposeResult{}, err
	}
	if Overlaps(e.Start, e.End, roomBusy) {
		return ProposeResult{}, ErrRoomConflict
	}

	return ProposeResult{}, nil
}

func (s *Service) recordAudit(ctx context.Context, userID string, action audit.Action, eventID, notes string) {
	if s.audit == nil {
		return
	}
	// best-effort: la auditoría no bloquea la operación
	_ = s.audit.Record(ctx, userID, action, eventID, notes)
}

// canSchedule: solo asistentes académicos y administradores proponen o
// editan eventos.
func canSchedule(actor auth.Claims) error {
	if strings.TrimSpace(actor.UserID) == "" {
		return ErrForbidden
	}
	switch actor.Role {
	case auth.RoleAcademicAssistant, auth.RoleAdministrator:
		return nil
	default:
		return ErrForbidden
	}
}

func resourceKeys(e Event) []string {
	keys := []string{string(ResourceTutor) + "/" + e.TutorID + "/" + string(e.Date)}
	if e.RoomID != "" {
		keys = append(keys, string(ResourceRoom)+"/"+e.RoomID+"/"+string(e.Date))
	}
	return keys
}

func lockErr(err error) error {
	if errors.Is(err, reslock.ErrTimeout) {
		return ErrStoreUnavailable
	}
	return err
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func notFoundOrStore(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return storeErr(err)
}
