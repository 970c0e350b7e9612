package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"academic-scheduler/internal/domain/scheduling"
)

type eventsRepo struct {
	mu   sync.RWMutex
	byID map[string]scheduling.Event
}

// NewEventsRepo crea el Event Store in-memory (dev y tests).
func NewEventsRepo() scheduling.Repository {
	return &eventsRepo{
		byID: make(map[string]scheduling.Event),
	}
}

func (r *eventsRepo) Create(ctx context.Context, e scheduling.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventsRepo) Update(ctx context.Context, e scheduling.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return scheduling.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (scheduling.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return scheduling.Event{}, scheduling.ErrNotFound
	}
	return e, nil
}

func (r *eventsRepo) ListForResource(ctx context.Context, kind scheduling.ResourceKind, resourceID string, date scheduling.Date, excludeID string) ([]scheduling.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scheduling.Event, 0)
	for _, e := range r.byID {
		if e.Date != date {
			continue
		}
		if e.Status.Terminal() {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}

		switch kind {
		case scheduling.ResourceTutor:
			if e.TutorID != resourceID {
				continue
			}
		case scheduling.ResourceRoom:
			if e.RoomID == "" || e.RoomID != resourceID {
				continue
			}
		default:
			continue
		}

		out = append(out, e)
	}
	return out, nil
}

func (r *eventsRepo) ListInRange(ctx context.Context, from, to scheduling.Date, f scheduling.Filter) ([]scheduling.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scheduling.Event, 0)
	for _, e := range r.byID {
		if e.Date < from || e.Date > to {
			continue
		}
		if f.TutorID != "" && e.TutorID != f.TutorID {
			continue
		}
		if f.CourseID != "" && e.CourseID != f.CourseID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.ExcludeStatus != "" && e.Status == f.ExcludeStatus {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})

	return out, nil
}
