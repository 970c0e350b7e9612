package approvals

import (
	"context"
	"errors"
	"strings"
	"time"

	"academic-scheduler/internal/domain/audit"
	"academic-scheduler/internal/domain/scheduling"
	"academic-scheduler/internal/platform/reslock"
	"academic-scheduler/internal/ports/auth"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("event not found")
	ErrBadState  = errors.New("invalid state for transition")
)

// Service es la máquina de estados sobre el Event Store:
// pending → approved | rejected; cualquier estado no cancelado → cancelled.
// Las transiciones solo necesitan lock por evento (no re-derivan
// disponibilidad), nunca lock por recurso.
type Service struct {
	repo  scheduling.Repository
	locks *reslock.Keyed
	audit *audit.Service // opcional
	now   func() time.Time
}

func NewService(repo scheduling.Repository, locks *reslock.Keyed, auditSvc *audit.Service) *Service {
	if locks == nil {
		locks = reslock.New(0)
	}
	return &Service{
		repo:  repo,
		locks: locks,
		audit: auditSvc,
		now:   time.Now,
	}
}

// Approve: pending → approved. Re-aprobar un evento ya aprobado es un no-op
// exitoso (soporta requests reintentados), no un error.
func (s *Service) Approve(ctx context.Context, actor auth.Claims, eventID string) (scheduling.Event, error) {
	if !roleAllows(actor.Role, TransitionApprove) {
		return scheduling.Event{}, ErrForbidden
	}

	return s.transition(ctx, eventID, func(e scheduling.Event) (scheduling.Status, error) {
		switch e.Status {
		case scheduling.StatusApproved:
			return e.Status, nil // idempotente
		case scheduling.StatusPending:
			return scheduling.StatusApproved, nil
		default:
			return "", ErrBadState
		}
	}, actor.UserID, audit.ActionApproveEvent)
}

// Reject: pending → rejected. Idempotente sobre rejected, igual que Approve.
func (s *Service) Reject(ctx context.Context, actor auth.Claims, eventID string) (scheduling.Event, error) {
	if !roleAllows(actor.Role, TransitionReject) {
		return scheduling.Event{}, ErrForbidden
	}

	return s.transition(ctx, eventID, func(e scheduling.Event) (scheduling.Status, error) {
		switch e.Status {
		case scheduling.StatusRejected:
			return e.Status, nil
		case scheduling.StatusPending:
			return scheduling.StatusRejected, nil
		default:
			return "", ErrBadState
		}
	}, actor.UserID, audit.ActionRejectEvent)
}

// Cancel: cualquier estado salvo cancelled → cancelled. Permitido al creador
// del evento o a un rol aprobador; libera el intervalo definitivamente
// (un evento aprobado también se puede cancelar).
func (s *Service) Cancel(ctx context.Context, actor auth.Claims, eventID string) (scheduling.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return scheduling.Event{}, ErrNotFound
	}

	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return scheduling.Event{}, mapRepoErr(err)
	}

	isCreator := strings.TrimSpace(actor.UserID) != "" && actor.UserID == e.CreatedBy
	if !isCreator && !roleAllows(actor.Role, TransitionCancel) {
		return scheduling.Event{}, ErrForbidden
	}

	return s.transition(ctx, eventID, func(e scheduling.Event) (scheduling.Status, error) {
		if e.Status == scheduling.StatusCancelled {
			return "", ErrBadState // cancelled es terminal
		}
		return scheduling.StatusCancelled, nil
	}, actor.UserID, audit.ActionCancelEvent)
}

// transition relee el evento bajo lock por evento y aplica el cambio de
// estado que decida next. Devolver el estado actual sin cambios señala
// no-op idempotente.
func (s *Service) transition(ctx context.Context, eventID string, next func(scheduling.Event) (scheduling.Status, error), actorID string, action audit.Action) (scheduling.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return scheduling.Event{}, ErrNotFound
	}

	release, err := s.locks.Acquire(ctx, "event/"+eventID)
	if err != nil {
		if errors.Is(err, reslock.ErrTimeout) {
			return scheduling.Event{}, scheduling.ErrStoreUnavailable
		}
		return scheduling.Event{}, err
	}
	defer release()

	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return scheduling.Event{}, mapRepoErr(err)
	}

	target, err := next(e)
	if err != nil {
		return scheduling.Event{}, err
	}
	if target == e.Status {
		return e, nil // no-op
	}

	e.Status = target
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return scheduling.Event{}, mapRepoErr(err)
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, actorID, action, e.ID, string(target))
	}
	return e, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, scheduling.ErrNotFound) {
		return ErrNotFound
	}
	return scheduling.ErrStoreUnavailable
}
