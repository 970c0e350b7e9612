package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record agrega una entrada. Los llamadores lo tratan como best-effort:
// un fallo de auditoría no debe tumbar la operación de calendario.
func (s *Service) Record(ctx context.Context, userID string, action Action, eventID, notes string) error {
	return s.repo.Append(ctx, Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		EventID:   eventID,
		Notes:     notes,
		Timestamp: s.now(),
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}
