package memory

import (
	"context"
	"sync"

	"academic-scheduler/internal/domain/audit"
)

type auditRepo struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewAuditRepo() audit.Repository {
	return &auditRepo{}
}

func (r *auditRepo) Append(ctx context.Context, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	return nil
}

// List devuelve las entradas más recientes primero.
func (r *auditRepo) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Entry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
