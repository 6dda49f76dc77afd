package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ReportFilter acota el reporte de tickets; PerPage se eleva para exportación.
type ReportFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Statuses    []string
	Priorities  []string
	AssigneeIDs []uint64
	Page        int
	PerPage     int
}

// ReportItem es una fila del reporte; las columnas que salen de LEFT JOIN
// llegan anulables.
type ReportItem struct {
	TicketID       uint64
	Folio          string
	Titulo         string
	Status         string
	Priority       string
	ServiceType    string
	ReporterNombre null.String
	TecnicoNombre  null.String
	EquipoSerie    null.String
	Departamento   null.String
	CreatedAt      time.Time
	AssignedAt     null.Time
	StartedAt      null.Time
	ResolvedAt     null.Time
	HorasSolucion  null.Float64
}
