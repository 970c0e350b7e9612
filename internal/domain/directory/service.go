package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCourses(ctx context.Context) ([]Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Course{}, ErrInvalidInput
	}
	c, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		// ErrNotFound pasa tal cual; cualquier otro fallo es infraestructura
		// y el llamador lo tiene que poder distinguir de "no existe".
		if errors.Is(err, ErrNotFound) {
			return Course{}, ErrNotFound
		}
		return Course{}, fmt.Errorf("directory: get course: %w", err)
	}
	return c, nil
}

func (s *Service) ListTutors(ctx context.Context) ([]Tutor, error) {
	return s.repo.ListTutors(ctx)
}

func (s *Service) ListTutorsByCourse(ctx context.Context, courseID string) ([]Tutor, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListTutorsByCourse(ctx, courseID)
}

func (s *Service) GetTutor(ctx context.Context, id string) (Tutor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Tutor{}, ErrInvalidInput
	}
	t, err := s.repo.GetTutor(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Tutor{}, ErrNotFound
		}
		return Tutor{}, fmt.Errorf("directory: get tutor: %w", err)
	}
	return t, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]Room, error) {
	return s.repo.ListRooms(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id string) (Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Room{}, ErrInvalidInput
	}
	r, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Room{}, ErrNotFound
		}
		return Room{}, fmt.Errorf("directory: get room: %w", err)
	}
	return r, nil
}

// TutorTeaches indica si el tutor está habilitado para dictar el curso.
func (s *Service) TutorTeaches(ctx context.Context, tutorID, courseID string) (bool, error) {
	t, err := s.GetTutor(ctx, tutorID)
	if err != nil {
		return false, err
	}
	for _, c := range t.CourseIDs {
		if c == courseID {
			return true, nil
		}
	}
	return false, nil
}
