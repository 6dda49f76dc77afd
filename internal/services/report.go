package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
)

type ReportServiceInterface interface {
	GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	return s.reportRepo.GetTicketReport(ctx, filter)
}

// AReportItemDTO aplana la fila del reporte para la respuesta JSON.
func AReportItemDTO(item entities.ReportItem) dto.ReportItemDTO {
	fechaFmt := time.RFC3339
	d := dto.ReportItemDTO{
		TicketID:      item.TicketID,
		Folio:         item.Folio,
		Titulo:        item.Titulo,
		Status:        item.Status,
		Priority:      item.Priority,
		ServiceType:   item.ServiceType,
		Reporter:      item.ReporterNombre.String,
		Tecnico:       item.TecnicoNombre.String,
		EquipoSerie:   item.EquipoSerie.String,
		Departamento:  item.Departamento.String,
		CreatedAt:     item.CreatedAt.Format(fechaFmt),
		HorasSolucion: item.HorasSolucion.Float64,
	}
	if item.AssignedAt.Valid {
		d.AssignedAt = item.AssignedAt.Time.Format(fechaFmt)
	}
	if item.StartedAt.Valid {
		d.StartedAt = item.StartedAt.Time.Format(fechaFmt)
	}
	if item.ResolvedAt.Valid {
		d.ResolvedAt = item.ResolvedAt.Time.Format(fechaFmt)
	}
	return d
}
