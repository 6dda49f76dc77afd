package authz

import (
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

type actionSet map[entities.Action]bool

type moduleSet map[entities.Module]bool

// rolePolicy describe la política fija de un rol: módulos concedidos con sus
// acciones, y módulos negados de forma explícita. Un módulo ausente de ambos
// mapas cae a la tabla granular.
type rolePolicy struct {
	granted map[entities.Module]actionSet
	denied  moduleSet
}

func acciones(as ...entities.Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

// buildRolePolicy materializa la tabla del diseño:
//
//   - tecnico: acceso operativo completo a dashboard, equipment y tickets
//     (incluida la asignación de tickets); users, permissions y reports
//     negados sin consultar concesiones.
//   - inventario: acceso total a equipment y supplies; en tickets solo
//     view/create — cualquier otra acción sobre tickets queda negada aunque
//     exista una concesión granular.
//   - usuario: solo view/create de tickets; todo lo demás negado.
//
// admin no aparece aquí: lo resuelve AdminRule antes de llegar a esta tabla.
func buildRolePolicy() map[entities.Role]rolePolicy {
	crud := acciones(entities.ActionView, entities.ActionCreate, entities.ActionEdit, entities.ActionDelete)
	todas := acciones(entities.Actions...)

	return map[entities.Role]rolePolicy{
		entities.RoleTecnico: {
			granted: map[entities.Module]actionSet{
				entities.ModuleDashboard: crud,
				entities.ModuleEquipment: crud,
				entities.ModuleTickets: acciones(
					entities.ActionView, entities.ActionCreate, entities.ActionEdit,
					entities.ActionDelete, entities.ActionAssign,
				),
			},
			denied: moduleSet{
				entities.ModuleUsers:       true,
				entities.ModulePermissions: true,
				entities.ModuleReports:     true,
			},
		},
		entities.RoleInventario: {
			granted: map[entities.Module]actionSet{
				entities.ModuleEquipment: todas,
				entities.ModuleSupplies:  todas,
				entities.ModuleTickets:   acciones(entities.ActionView, entities.ActionCreate),
			},
			denied: moduleSet{
				entities.ModuleUsers:       true,
				entities.ModulePermissions: true,
				entities.ModuleReports:     true,
			},
		},
		entities.RoleUsuario: {
			granted: map[entities.Module]actionSet{
				entities.ModuleTickets: acciones(entities.ActionView, entities.ActionCreate),
			},
			denied: moduleSet{
				entities.ModuleDashboard:   true,
				entities.ModuleUsers:       true,
				entities.ModuleEquipment:   true,
				entities.ModuleReports:     true,
				entities.ModuleProfile:     true,
				entities.ModulePermissions: true,
				entities.ModuleSupplies:    true,
			},
		},
	}
}
