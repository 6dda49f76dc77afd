package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// reportRowCap limita la exportación para no agotar memoria con excelize.
const reportRowCap = 10000

type ReportRepositoryInterface interface {
	GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetTicketReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	base := psql.
		Select(
			"t.id", "t.folio", "t.titulo", "t.status", "t.priority", "t.service_type",
			"rep.nombre AS reporter_nombre",
			"tec.nombre AS tecnico_nombre",
			"e.numero_serie",
			"d.nombre AS departamento",
			"t.created_at", "t.assigned_at", "t.started_at", "t.resolved_at",
			"EXTRACT(EPOCH FROM (t.resolved_at - t.created_at)) / 3600.0 AS horas_solucion",
		).
		From("tickets t").
		LeftJoin("users rep ON rep.id = t.reporter_id").
		LeftJoin("users tec ON tec.id = t.assigned_to").
		LeftJoin("equipment e ON e.id = t.equipment_id").
		LeftJoin("departments d ON d.id = rep.department_id")
	countBuilder := psql.Select("COUNT(*)").From("tickets t")

	where := func(cond interface{}, args ...interface{}) {
		base = base.Where(cond, args...)
		countBuilder = countBuilder.Where(cond, args...)
	}

	if filter.DateFrom != nil {
		where(sq.GtOrEq{"t.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		where(sq.LtOrEq{"t.created_at": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		where(sq.Eq{"t.status": filter.Statuses})
	}
	if len(filter.Priorities) > 0 {
		where(sq.Eq{"t.priority": filter.Priorities})
	}
	if len(filter.AssigneeIDs) > 0 {
		where(sq.Eq{"t.assigned_to": filter.AssigneeIDs})
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando filas del reporte: %w", err)
	}

	limit := filter.PerPage
	if limit <= 0 || limit > reportRowCap {
		limit = reportRowCap
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	querySQL, args, err := base.
		OrderBy("t.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error consultando reporte de tickets: %w", err)
	}
	defer rows.Close()

	items := make([]entities.ReportItem, 0)
	for rows.Next() {
		var it entities.ReportItem
		if err := rows.Scan(
			&it.TicketID, &it.Folio, &it.Titulo, &it.Status, &it.Priority, &it.ServiceType,
			&it.ReporterNombre, &it.TecnicoNombre, &it.EquipoSerie, &it.Departamento,
			&it.CreatedAt, &it.AssignedAt, &it.StartedAt, &it.ResolvedAt, &it.HorasSolucion,
		); err != nil {
			return nil, 0, fmt.Errorf("error escaneando fila del reporte: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}
