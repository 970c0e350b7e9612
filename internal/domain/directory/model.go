package directory

// Course es una asignatura a la que pertenecen los eventos.
type Course struct {
	ID   string
	Name string
	Year int
}

// Tutor es un docente; CourseIDs son los cursos que puede dictar.
type Tutor struct {
	ID        string
	Name      string
	CourseIDs []string
}

// Room es una sala reservable.
type Room struct {
	ID   string
	Name string
}
