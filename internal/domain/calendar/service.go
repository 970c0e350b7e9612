package calendar

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"academic-scheduler/internal/domain/directory"
	"academic-scheduler/internal/domain/scheduling"
)

var ErrInvalidRange = errors.New("invalid date range")

// Service es la proyección de calendario: agregación de solo lectura sobre
// el Event Store. Derivada, nunca autoritativa; no cachea más allá de una
// consulta.
type Service struct {
	repo scheduling.Repository
	dir  *directory.Service
}

func NewService(repo scheduling.Repository, dir *directory.Service) *Service {
	return &Service{repo: repo, dir: dir}
}

// EventsInRange devuelve los eventos con from <= date <= to que pasan los
// filtros conjuntivos, ordenados por fecha y hora de inicio.
func (s *Service) EventsInRange(ctx context.Context, from, to scheduling.Date, f scheduling.Filter) ([]scheduling.Event, error) {
	if from == "" || to == "" || from > to {
		return nil, ErrInvalidRange
	}
	events, err := s.repo.ListInRange(ctx, from, to, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scheduling.ErrStoreUnavailable, err)
	}
	return events, nil
}

// ResolveNames trae los nombres de display de curso/tutor/sala, best-effort:
// un id que ya no resuelva queda con nombre vacío en vez de fallar la lectura.
func (s *Service) ResolveNames(ctx context.Context, e scheduling.Event) (courseName, tutorName, roomName string) {
	if c, err := s.dir.GetCourse(ctx, e.CourseID); err == nil {
		courseName = c.Name
	}
	if t, err := s.dir.GetTutor(ctx, e.TutorID); err == nil {
		tutorName = t.Name
	}
	if e.RoomID != "" {
		if r, err := s.dir.GetRoom(ctx, e.RoomID); err == nil {
			roomName = r.Name
		}
	}
	return courseName, tutorName, roomName
}

// WriteCSV serializa eventos al formato delimitado que consume la facilidad
// de exportación. El núcleo no depende de este formato: es una vista más.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, events []scheduling.Event) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "title", "date", "start", "end", "course", "tutor", "room", "type", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range events {
		courseName, tutorName, roomName := s.ResolveNames(ctx, e)
		rec := []string{
			e.ID,
			e.Title,
			string(e.Date),
			e.Start.String(),
			e.End.String(),
			courseName,
			tutorName,
			roomName,
			string(e.Type),
			string(e.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
