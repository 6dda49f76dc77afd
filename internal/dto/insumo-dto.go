package dto

type CreateInsumoDTO struct {
	Nombre          string `json:"nombre" validate:"required,min=2,max=255"`
	CantidadInicial int64  `json:"cantidad_inicial" validate:"gte=0"`
	StockMinimo     int64  `json:"stock_minimo" validate:"gte=0"`
	Unidad          string `json:"unidad" validate:"required,min=1,max=50"`
	Ubicacion       string `json:"ubicacion" validate:"omitempty,max=255"`
}

// UpdateInsumoDTO no admite cantidad: el stock solo cambia con movimientos.
type UpdateInsumoDTO struct {
	Nombre      *string `json:"nombre,omitempty" validate:"omitempty,min=2,max=255"`
	StockMinimo *int64  `json:"stock_minimo,omitempty" validate:"omitempty,gte=0"`
	Unidad      *string `json:"unidad,omitempty" validate:"omitempty,min=1,max=50"`
	Ubicacion   *string `json:"ubicacion,omitempty" validate:"omitempty,max=255"`
}

type CreateMovementDTO struct {
	Tipo       string `json:"tipo" validate:"required,oneof=MANUAL ADJUSTMENT"`
	Cantidad   int64  `json:"cantidad" validate:"required,ne=0"`
	Referencia string `json:"referencia" validate:"omitempty,max=255"`
}

type InsumoDTO struct {
	ID               uint64  `json:"id"`
	Nombre           string  `json:"nombre"`
	Cantidad         int64   `json:"cantidad"`
	StockMinimo      int64   `json:"stock_minimo"`
	Unidad           string  `json:"unidad"`
	Ubicacion        string  `json:"ubicacion"`
	LastExit         *string `json:"last_exit,omitempty"`
	LastExitQuantity *int64  `json:"last_exit_quantity,omitempty"`
}

type MovementDTO struct {
	ID         uint64  `json:"id"`
	InsumoID   uint64  `json:"insumo_id"`
	Insumo     string  `json:"insumo"`
	Tipo       string  `json:"tipo"`
	Cantidad   int64   `json:"cantidad"`
	TicketID   *uint64 `json:"ticket_id,omitempty"`
	UsuarioID  uint64  `json:"usuario_id"`
	Referencia string  `json:"referencia"`
	CreatedAt  string  `json:"created_at"`
}
