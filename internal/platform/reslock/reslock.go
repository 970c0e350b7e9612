package reslock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

var ErrTimeout = errors.New("lock wait timed out")

const DefaultWait = 3 * time.Second

// Keyed serializa secciones críticas por clave lógica, con espera acotada.
// El motor de planificación lo usa con claves (recurso, fecha) para que la
// validación de conflictos sea check-then-act atómica: dos propuestas sobre
// el mismo (tutor, fecha) o (sala, fecha) nunca intercalan lectura y
// escritura. Claves disjuntas avanzan en paralelo.
type Keyed struct {
	mu   sync.Mutex
	sems map[string]*entry
	wait time.Duration
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

func New(wait time.Duration) *Keyed {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Keyed{
		sems: make(map[string]*entry),
		wait: wait,
	}
}

// Acquire toma todas las claves (en orden estable, para no interbloquear) y
// devuelve la función que las libera. Si alguna clave no se consigue dentro
// de la espera acotada, libera lo adquirido y devuelve ErrTimeout: nunca
// encolamos sin límite.
func (k *Keyed) Acquire(ctx context.Context, keys ...string) (func(), error) {
	uniq := dedupSorted(keys)

	acquired := make([]string, 0, len(uniq))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			k.release(acquired[i])
		}
	}

	for _, key := range uniq {
		if err := k.acquireOne(ctx, key); err != nil {
			release()
			return nil, err
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (k *Keyed) acquireOne(ctx context.Context, key string) error {
	k.mu.Lock()
	e, ok := k.sems[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		k.sems[key] = e
	}
	e.refs++
	k.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, k.wait)
	defer cancel()

	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.sems, key)
		}
		k.mu.Unlock()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTimeout
	}
	return nil
}

func (k *Keyed) release(key string) {
	k.mu.Lock()
	e, ok := k.sems[key]
	if !ok {
		k.mu.Unlock()
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(k.sems, key)
	}
	k.mu.Unlock()

	e.sem.Release(1)
}

func dedupSorted(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
