package memory

import (
	"context"
	"sort"
	"sync"

	"academic-scheduler/internal/domain/directory"
)

// DirectoryRepo es el directorio de referencia in-memory. A diferencia de
// los otros repos expone el tipo concreto: el seed (dev, tests) necesita
// los métodos Add*.
type DirectoryRepo struct {
	mu      sync.RWMutex
	courses map[string]directory.Course
	tutors  map[string]directory.Tutor
	rooms   map[string]directory.Room
}

func NewDirectoryRepo() *DirectoryRepo {
	return &DirectoryRepo{
		courses: make(map[string]directory.Course),
		tutors:  make(map[string]directory.Tutor),
		rooms:   make(map[string]directory.Room),
	}
}

func (r *DirectoryRepo) AddCourse(c directory.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = c
}

func (r *DirectoryRepo) AddTutor(t directory.Tutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tutors[t.ID] = t
}

func (r *DirectoryRepo) AddRoom(room directory.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = room
}

func (r *DirectoryRepo) ListCourses(ctx context.Context) ([]directory.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepo) GetCourse(ctx context.Context, id string) (directory.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok {
		return directory.Course{}, directory.ErrNotFound
	}
	return c, nil
}

func (r *DirectoryRepo) ListTutors(ctx context.Context) ([]directory.Tutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.Tutor, 0, len(r.tutors))
	for _, t := range r.tutors {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepo) ListTutorsByCourse(ctx context.Context, courseID string) ([]directory.Tutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.Tutor, 0)
	for _, t := range r.tutors {
		for _, c := range t.CourseIDs {
			if c == courseID {
				out = append(out, t)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepo) GetTutor(ctx context.Context, id string) (directory.Tutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tutors[id]
	if !ok {
		return directory.Tutor{}, directory.ErrNotFound
	}
	return t, nil
}

func (r *DirectoryRepo) ListRooms(ctx context.Context) ([]directory.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepo) GetRoom(ctx context.Context, id string) (directory.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return directory.Room{}, directory.ErrNotFound
	}
	return room, nil
}
