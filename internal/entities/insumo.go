package entities

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

// Insumo es un consumible del almacén. Su cantidad solo se muta a través de
// movimientos de inventario; nunca mediante edición directa.
type Insumo struct {
	ID               uint64     `json:"id"`
	Nombre           string     `json:"nombre"`
	Cantidad         int64      `json:"cantidad"`
	StockMinimo      int64      `json:"stock_minimo"`
	Unidad           string     `json:"unidad"`
	Ubicacion        string     `json:"ubicacion"`
	LastExit         *time.Time `json:"last_exit,omitempty"`
	LastExitQuantity *int64     `json:"last_exit_quantity,omitempty"`

	types.BaseEntity
}

type MovementType string

const (
	MovementTicket     MovementType = "TICKET"
	MovementManual     MovementType = "MANUAL"
	MovementInitial    MovementType = "INITIAL"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func (t MovementType) Valido() bool {
	switch t {
	case MovementTicket, MovementManual, MovementInitial, MovementAdjustment:
		return true
	}
	return false
}

// InventoryMovement es una línea del kardex: cantidad con signo (negativa en
// salidas), referencia opcional al ticket que la originó.
type InventoryMovement struct {
	ID         uint64       `json:"id"`
	InsumoID   uint64       `json:"insumo_id"`
	Tipo       MovementType `json:"tipo"`
	Cantidad   int64        `json:"cantidad"`
	TicketID   *uint64      `json:"ticket_id,omitempty"`
	UsuarioID  uint64       `json:"usuario_id"`
	Referencia string       `json:"referencia"`
	CreatedAt  time.Time    `json:"created_at"`
}
