package approvals

import "academic-scheduler/internal/ports/auth"

// Transition es un cambio de estado del workflow de aprobación.
type Transition string

const (
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionCancel  Transition = "cancel"
)

// rolePermissions es la única tabla de autorización del workflow:
// {rol → transiciones permitidas}. El gating por rol vive acá y en ningún
// otro lado (nada de condicionales dispersos en la capa de presentación).
//
// cancel además está permitido al creador del evento, sea cual sea su rol;
// eso se resuelve en el servicio porque depende del evento, no solo del rol.
var rolePermissions = map[auth.Role][]Transition{
	auth.RoleDepartmentAssistant: {TransitionApprove, TransitionReject, TransitionCancel},
	auth.RoleAdministrator:       {TransitionApprove, TransitionReject, TransitionCancel},
}

func roleAllows(role auth.Role, t Transition) bool {
	for _, allowed := range rolePermissions[role] {
		if allowed == t {
			return true
		}
	}
	return false
}
