package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

func usuario(role entities.Role) *entities.User {
	return &entities.User{ID: 7, Nombre: "Prueba", Role: role, IsActive: true}
}

func concesion(module entities.Module, action entities.Action, active bool, expires *time.Time) entities.UserPermission {
	return entities.UserPermission{
		UserID:    7,
		Module:    module,
		Action:    action,
		GrantedBy: 1,
		GrantedAt: time.Now().Add(-time.Hour),
		ExpiresAt: expires,
		IsActive:  active,
	}
}

func TestEvaluator_AdminPermiteTodo(t *testing.T) {
	e := NewEvaluator()
	admin := usuario(entities.RoleAdmin)

	for _, m := range entities.Modules {
		for _, a := range entities.Actions {
			assert.True(t, e.HasPermission(admin, nil, m, a), "admin debe poder %s:%s", m, a)
		}
	}
}

func TestEvaluator_UsuarioInactivoSiempreNiega(t *testing.T) {
	e := NewEvaluator()
	admin := usuario(entities.RoleAdmin)
	admin.IsActive = false

	assert.False(t, e.HasPermission(admin, nil, entities.ModuleTickets, entities.ActionView))
	assert.False(t, e.HasPermission(nil, nil, entities.ModuleTickets, entities.ActionView))
}

func TestEvaluator_PoliticaTecnico(t *testing.T) {
	e := NewEvaluator()
	tecnico := usuario(entities.RoleTecnico)

	casos := []struct {
		module entities.Module
		action entities.Action
		want   bool
	}{
		{entities.ModuleTickets, entities.ActionView, true},
		{entities.ModuleTickets, entities.ActionEdit, true},
		{entities.ModuleTickets, entities.ActionDelete, true},
		{entities.ModuleTickets, entities.ActionAssign, true},
		{entities.ModuleEquipment, entities.ActionEdit, true},
		{entities.ModuleDashboard, entities.ActionView, true},
		{entities.ModuleUsers, entities.ActionView, false},
		{entities.ModulePermissions, entities.ActionView, false},
		{entities.ModuleReports, entities.ActionExport, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, e.HasPermission(tecnico, nil, c.module, c.action),
			"tecnico %s:%s", c.module, c.action)
	}
}

// Los módulos enumerados por la tabla de rol se resuelven ahí mismo: una
// concesión granular no puede abrir lo que la rama del rol niega.
func TestEvaluator_RamaDeRolPrecedeAConcesiones(t *testing.T) {
	e := NewEvaluator()
	tecnico := usuario(entities.RoleTecnico)
	grants := []entities.UserPermission{
		concesion(entities.ModuleUsers, entities.ActionView, true, nil),
		concesion(entities.ModuleReports, entities.ActionExport, true, nil),
	}

	assert.False(t, e.HasPermission(tecnico, grants, entities.ModuleUsers, entities.ActionView))
	assert.False(t, e.HasPermission(tecnico, grants, entities.ModuleReports, entities.ActionExport))
}

func TestEvaluator_InventarioTicketsSoloVerYCrear(t *testing.T) {
	e := NewEvaluator()
	inv := usuario(entities.RoleInventario)

	assert.True(t, e.HasPermission(inv, nil, entities.ModuleTickets, entities.ActionView))
	assert.True(t, e.HasPermission(inv, nil, entities.ModuleTickets, entities.ActionCreate))
	assert.False(t, e.HasPermission(inv, nil, entities.ModuleTickets, entities.ActionEdit))
	assert.False(t, e.HasPermission(inv, nil, entities.ModuleTickets, entities.ActionAssign))
	assert.True(t, e.HasPermission(inv, nil, entities.ModuleEquipment, entities.ActionEdit))
	assert.True(t, e.HasPermission(inv, nil, entities.ModuleSupplies, entities.ActionDelete))

	// Ni siquiera una concesión activa abre tickets:edit para inventario.
	grants := []entities.UserPermission{concesion(entities.ModuleTickets, entities.ActionEdit, true, nil)}
	assert.False(t, e.HasPermission(inv, grants, entities.ModuleTickets, entities.ActionEdit))
}

func TestEvaluator_UsuarioSoloTicketsVerYCrear(t *testing.T) {
	e := NewEvaluator()
	u := usuario(entities.RoleUsuario)

	assert.True(t, e.HasPermission(u, nil, entities.ModuleTickets, entities.ActionView))
	assert.True(t, e.HasPermission(u, nil, entities.ModuleTickets, entities.ActionCreate))
	assert.False(t, e.HasPermission(u, nil, entities.ModuleTickets, entities.ActionEdit))
	for _, m := range entities.Modules {
		if m == entities.ModuleTickets {
			continue
		}
		assert.False(t, e.HasModuleAccess(u, nil, m), "usuario no debe acceder a %s", m)
	}
}

// Un rol sin rama en la tabla (p. ej. uno nuevo) consulta solo las concesiones
// activas y no expiradas.
func TestEvaluator_RolDesconocidoCaeAConcesiones(t *testing.T) {
	e := NewEvaluator()
	auditor := usuario(entities.Role("auditor"))

	assert.False(t, e.HasPermission(auditor, nil, entities.ModuleReports, entities.ActionView))

	futuro := time.Now().Add(24 * time.Hour)
	pasado := time.Now().Add(-24 * time.Hour)

	t.Run("concesion activa y vigente permite", func(t *testing.T) {
		grants := []entities.UserPermission{concesion(entities.ModuleReports, entities.ActionView, true, &futuro)}
		assert.True(t, e.HasPermission(auditor, grants, entities.ModuleReports, entities.ActionView))
	})

	t.Run("concesion sin expiracion permite", func(t *testing.T) {
		grants := []entities.UserPermission{concesion(entities.ModuleReports, entities.ActionView, true, nil)}
		assert.True(t, e.HasPermission(auditor, grants, entities.ModuleReports, entities.ActionView))
	})

	t.Run("is_active=false nunca otorga acceso", func(t *testing.T) {
		grants := []entities.UserPermission{concesion(entities.ModuleReports, entities.ActionView, false, &futuro)}
		assert.False(t, e.HasPermission(auditor, grants, entities.ModuleReports, entities.ActionView))
	})

	t.Run("concesion expirada nunca otorga acceso", func(t *testing.T) {
		grants := []entities.UserPermission{concesion(entities.ModuleReports, entities.ActionView, true, &pasado)}
		assert.False(t, e.HasPermission(auditor, grants, entities.ModuleReports, entities.ActionView))
	})

	t.Run("la accion debe coincidir exactamente", func(t *testing.T) {
		grants := []entities.UserPermission{concesion(entities.ModuleReports, entities.ActionView, true, nil)}
		assert.False(t, e.HasPermission(auditor, grants, entities.ModuleReports, entities.ActionExport))
	})
}

func TestEvaluator_PredicadosDeConveniencia(t *testing.T) {
	e := NewEvaluator()
	inv := usuario(entities.RoleInventario)

	require.True(t, e.CanView(inv, nil, entities.ModuleSupplies))
	require.True(t, e.CanCreate(inv, nil, entities.ModuleSupplies))
	require.True(t, e.CanEdit(inv, nil, entities.ModuleEquipment))
	require.True(t, e.CanExport(inv, nil, entities.ModuleSupplies))
	require.False(t, e.CanDelete(inv, nil, entities.ModuleTickets))
	require.False(t, e.CanAssign(inv, nil, entities.ModuleTickets))
}
