package entities

import (
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

// Role es el rol grueso del usuario. La política por rol se evalúa antes que
// los permisos granulares (ver internal/authz).
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTecnico    Role = "tecnico"
	RoleInventario Role = "inventario"
	RoleUsuario    Role = "usuario"
)

// EsPersonalTecnico indica si el rol puede recibir tickets asignados.
func (r Role) EsPersonalTecnico() bool {
	return r == RoleAdmin || r == RoleTecnico
}

type User struct {
	ID           uint64  `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	IsActive     bool    `json:"is_active"`

	types.BaseEntity
}
