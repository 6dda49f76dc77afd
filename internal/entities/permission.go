package entities

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

// Module y Action forman el catálogo cerrado de permisos (module, action).
type Module string

const (
	ModuleDashboard   Module = "dashboard"
	ModuleUsers       Module = "users"
	ModuleEquipment   Module = "equipment"
	ModuleTickets     Module = "tickets"
	ModuleReports     Module = "reports"
	ModuleProfile     Module = "profile"
	ModulePermissions Module = "permissions"
	ModuleSupplies    Module = "supplies"
)

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
	ActionAssign Action = "assign"
)

// Modules y Actions enumeran el catálogo completo; los usan el seeder y los tests.
var Modules = []Module{
	ModuleDashboard, ModuleUsers, ModuleEquipment, ModuleTickets,
	ModuleReports, ModuleProfile, ModulePermissions, ModuleSupplies,
}

var Actions = []Action{
	ActionView, ActionCreate, ActionEdit, ActionDelete, ActionExport, ActionAssign,
}

// Permission es un par (module, action) único.
type Permission struct {
	ID     uint64 `json:"id"`
	Module Module `json:"module"`
	Action Action `json:"action"`

	types.BaseEntity
}

// UserPermission es una concesión granular a un usuario. La revocación es
// lógica (is_active=false); las filas nunca se borran.
type UserPermission struct {
	ID           uint64     `json:"id"`
	UserID       uint64     `json:"user_id"`
	PermissionID uint64     `json:"permission_id"`
	Module       Module     `json:"module"`
	Action       Action     `json:"action"`
	GrantedBy    uint64     `json:"granted_by"`
	GrantedAt    time.Time  `json:"granted_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// Vigente informa si la concesión otorga acceso en el instante `now`.
func (up UserPermission) Vigente(now time.Time) bool {
	if !up.IsActive {
		return false
	}
	if up.ExpiresAt != nil && !up.ExpiresAt.After(now) {
		return false
	}
	return true
}
