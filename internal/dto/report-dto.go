package dto

type ReportItemDTO struct {
	TicketID       uint64  `json:"ticket_id"`
	Folio          string  `json:"folio"`
	Titulo         string  `json:"titulo"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	ServiceType    string  `json:"service_type"`
	Reporter       string  `json:"reporter"`
	Tecnico        string  `json:"tecnico"`
	EquipoSerie    string  `json:"equipo_serie"`
	Departamento   string  `json:"departamento"`
	CreatedAt      string  `json:"created_at"`
	AssignedAt     string  `json:"assigned_at"`
	StartedAt      string  `json:"started_at"`
	ResolvedAt     string  `json:"resolved_at"`
	HorasSolucion  float64 `json:"horas_solucion"`
}

type DashboardDTO struct {
	TicketsNuevos     uint64 `json:"tickets_nuevos"`
	TicketsPendientes uint64 `json:"tickets_pendientes"`
	TicketsEnProceso  uint64 `json:"tickets_en_proceso"`
	TicketsCerrados   uint64 `json:"tickets_cerrados"`
	EquiposActivos    uint64 `json:"equipos_activos"`
	EquiposReparacion uint64 `json:"equipos_reparacion"`
	InsumosStockBajo  uint64 `json:"insumos_stock_bajo"`
	UsuariosActivos   uint64 `json:"usuarios_activos"`
}
