package events

const (
	TicketAsignado = "ticket.asignado"
	TicketCerrado  = "ticket.cerrado"
	StockBajo      = "insumo.stock_bajo"
)

// TicketAsignadoEvent se publica cuando un ticket queda asignado a un técnico.
type TicketAsignadoEvent struct {
	TicketID  uint64
	Folio     string
	Titulo    string
	TecnicoID uint64
}

func (e TicketAsignadoEvent) Name() string { return TicketAsignado }

// TicketCerradoEvent se publica al cerrar un ticket; notifica al reportante.
type TicketCerradoEvent struct {
	TicketID   uint64
	Folio      string
	Titulo     string
	ReporterID uint64
}

func (e TicketCerradoEvent) Name() string { return TicketCerrado }

// StockBajoEvent se publica cuando un movimiento deja al insumo en o por
// debajo de su stock mínimo.
type StockBajoEvent struct {
	InsumoID uint64
	Nombre   string
	Cantidad int64
	Minimo   int64
}

func (e StockBajoEvent) Name() string { return StockBajo }
