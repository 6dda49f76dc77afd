package entities

import (
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type EquipmentStatus string

const (
	EquipoActivo        EquipmentStatus = "activo"
	EquipoEnReparacion  EquipmentStatus = "en_reparacion"
	EquipoBaja          EquipmentStatus = "baja"
	EquipoAlmacenado    EquipmentStatus = "almacenado"
)

type Equipment struct {
	ID             uint64          `json:"id"`
	Tipo           string          `json:"tipo"`
	Marca          string          `json:"marca"`
	Modelo         string          `json:"modelo"`
	NumeroSerie    string          `json:"numero_serie"`
	Estado         EquipmentStatus `json:"estado"`
	AssignedUserID *uint64         `json:"assigned_user_id,omitempty"`
	DepartmentID   *uint64         `json:"department_id,omitempty"`
	Specs          *string         `json:"specs,omitempty"`

	types.BaseEntity
}
