package directory

import "context"

// Repository expone los conjuntos de referencia (cursos, tutores, salas).
// El directorio es de solo lectura para el resto del sistema; se alimenta
// fuera de banda (seed, administración).
type Repository interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)

	ListTutors(ctx context.Context) ([]Tutor, error)
	ListTutorsByCourse(ctx context.Context, courseID string) ([]Tutor, error)
	GetTutor(ctx context.Context, id string) (Tutor, error)

	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
}
