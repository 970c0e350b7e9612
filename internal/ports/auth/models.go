package auth

// Role es el rol académico que el proveedor de identidad asigna al usuario.
type Role string

const (
	RoleStudent             Role = "student"
	RoleTutor               Role = "tutor"
	RoleAcademicAssistant   Role = "academic_assistant"
	RoleDepartmentAssistant Role = "department_assistant"
	RoleAdministrator       Role = "administrator"
)

// ValidRole indica si el rol es uno de los conocidos por el sistema.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAcademicAssistant, RoleDepartmentAssistant, RoleAdministrator:
		return true
	default:
		return false
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Role   Role
	Email  string
}
