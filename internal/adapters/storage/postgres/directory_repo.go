package postgres

import (
	"context"
	"database/sql"

	"academic-scheduler/internal/domain/directory"
)

// DirectoryRepo lee las tablas de referencia:
//
//	courses(id text pk, name text, year int)
//	tutors(id text pk, name text)
//	tutor_courses(tutor_id text, course_id text)  -- habilitación para dictar
//	rooms(id text pk, name text)
//
// Solo lectura desde el servicio: el seed/administración escribe por fuera.
type DirectoryRepo struct {
	db *sql.DB
}

func NewDirectoryRepo(db *sql.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

func (r *DirectoryRepo) ListCourses(ctx context.Context) ([]directory.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, year FROM courses ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Course, 0)
	for rows.Next() {
		var c directory.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Year); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) GetCourse(ctx context.Context, id string) (directory.Course, error) {
	var c directory.Course
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, year FROM courses WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Year)
	if err != nil {
		if err == sql.ErrNoRows {
			return directory.Course{}, directory.ErrNotFound
		}
		return directory.Course{}, err
	}
	return c, nil
}

func (r *DirectoryRepo) ListTutors(ctx context.Context) ([]directory.Tutor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM tutors ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Tutor, 0)
	for rows.Next() {
		var t directory.Tutor
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		courses, err := r.tutorCourses(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].CourseIDs = courses
	}
	return out, nil
}

func (r *DirectoryRepo) ListTutorsByCourse(ctx context.Context, courseID string) ([]directory.Tutor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tutors t
		JOIN tutor_courses tc ON tc.tutor_id = t.id
		WHERE tc.course_id = $1
		ORDER BY t.name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Tutor, 0)
	for rows.Next() {
		var t directory.Tutor
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		courses, err := r.tutorCourses(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.CourseIDs = courses
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) GetTutor(ctx context.Context, id string) (directory.Tutor, error) {
	var t directory.Tutor
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM tutors WHERE id = $1
	`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return directory.Tutor{}, directory.ErrNotFound
		}
		return directory.Tutor{}, err
	}

	courses, err := r.tutorCourses(ctx, id)
	if err != nil {
		return directory.Tutor{}, err
	}
	t.CourseIDs = courses
	return t, nil
}

func (r *DirectoryRepo) tutorCourses(ctx context.Context, tutorID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT course_id FROM tutor_courses WHERE tutor_id = $1
	`, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) ListRooms(ctx context.Context) ([]directory.Room, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM rooms ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Room, 0)
	for rows.Next() {
		var room directory.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) GetRoom(ctx context.Context, id string) (directory.Room, error) {
	var room directory.Room
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM rooms WHERE id = $1
	`, id).Scan(&room.ID, &room.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return directory.Room{}, directory.ErrNotFound
		}
		return directory.Room{}, err
	}
	return room, nil
}
