package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/services"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetTicketReport(ctx echo.Context) error {
	filter, format := c.parseFilters(ctx)

	data, total, err := c.reportService.GetTicketReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	items := make([]dto.ReportItemDTO, 0, len(data))
	for _, item := range data {
		items = append(items, services.AReportItemDTO(item))
	}
	return utils.SuccessResponse(ctx, items, "Reporte generado", http.StatusOK, total)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.ReportFilter, string) {
	stdFilter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.ReportFilter{
		Page:    stdFilter.Page,
		PerPage: stdFilter.Limit,
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		// La exportación descarga todo; el repositorio aplica su propio tope.
		filter.Page = 1
		filter.PerPage = 0
	}

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}

	if s := ctx.QueryParam("status"); s != "" {
		filter.Statuses = strings.Split(s, ",")
	}
	if p := ctx.QueryParam("priority"); p != "" {
		filter.Priorities = strings.Split(p, ",")
	}

	var strs []string
	if arr, ok := ctx.QueryParams()["assignee_ids[]"]; ok {
		strs = arr
	} else if s := ctx.QueryParam("assignee_ids"); s != "" {
		strs = strings.Split(s, ",")
	}
	filter.AssigneeIDs, _ = utils.ParseUint64Slice(strs)

	return filter, format
}

var reportHeaders = []string{
	"Folio", "Título", "Estado", "Prioridad", "Tipo de servicio", "Reportante",
	"Técnico", "No. de serie", "Departamento", "Fecha de creación",
	"Fecha de asignación", "Fecha de inicio", "Fecha de cierre", "Horas de solución",
}

func rowToSlice(item entities.ReportItem) []interface{} {
	dateFmt := "02/01/2006 15:04"
	var assignedAt, startedAt, resolvedAt, horas string
	if item.AssignedAt.Valid {
		assignedAt = item.AssignedAt.Time.Format(dateFmt)
	}
	if item.StartedAt.Valid {
		startedAt = item.StartedAt.Time.Format(dateFmt)
	}
	if item.ResolvedAt.Valid {
		resolvedAt = item.ResolvedAt.Time.Format(dateFmt)
	}
	if item.HorasSolucion.Valid {
		horas = fmt.Sprintf("%.2f", item.HorasSolucion.Float64)
	}

	return []interface{}{
		item.Folio, item.Titulo, item.Status, item.Priority, item.ServiceType,
		item.ReporterNombre.String, item.TecnicoNombre.String, item.EquipoSerie.String,
		item.Departamento.String, item.CreatedAt.Format(dateFmt),
		assignedAt, startedAt, resolvedAt, horas,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Reporte de tickets"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "N1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "F", "I", 25)
	f.SetColWidth(sheet, "J", "M", 20)

	fileName := fmt.Sprintf("reporte_tickets_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
