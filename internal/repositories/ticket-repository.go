package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type TicketRepositoryInterface interface {
	GetTickets(ctx context.Context, filter types.Filter) ([]dto.TicketDTO, uint64, error)
	FindTicketDTO(ctx context.Context, id uint64) (*dto.TicketDTO, error)
	FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error)
	FindTicketForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error)
	CreateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) (uint64, error)
	UpdateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) error
	ReplacePartsInTx(ctx context.Context, tx pgx.Tx, ticketID uint64, parts []entities.TicketPart) error
	DeleteTicketInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type TicketRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTicketRepository(storage *pgxpool.Pool, logger *zap.Logger) TicketRepositoryInterface {
	return &TicketRepository{storage: storage, logger: logger}
}

const ticketColumns = `
	t.id, t.folio, t.titulo, t.descripcion, t.status, t.priority, t.service_type,
	t.reporter_id, t.assigned_to_id, t.equipment_id, t.diagnosis, t.solution, t.notes,
	t.assigned_at, t.started_at, t.resolved_at, t.created_at, t.updated_at`

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	err := row.Scan(
		&t.ID, &t.Folio, &t.Titulo, &t.Descripcion, &t.Status, &t.Priority, &t.ServiceType,
		&t.ReporterID, &t.AssignedToID, &t.EquipmentID, &t.Diagnosis, &t.Solution, &t.Notes,
		&t.AssignedAt, &t.StartedAt, &t.ResolvedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error escaneando ticket: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) loadParts(ctx context.Context, q querier, ticketID uint64) ([]entities.TicketPart, error) {
	rows, err := q.Query(ctx, `
		SELECT nombre, cantidad FROM ticket_parts
		WHERE ticket_id = $1 ORDER BY position`,
		ticketID)
	if err != nil {
		return nil, fmt.Errorf("error leyendo refacciones del ticket: %w", err)
	}
	defer rows.Close()

	parts := make([]entities.TicketPart, 0)
	for rows.Next() {
		var p entities.TicketPart
		if err := rows.Scan(&p.Nombre, &p.Cantidad); err != nil {
			return nil, fmt.Errorf("error escaneando refacción: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *TicketRepository) GetTickets(ctx context.Context, filter types.Filter) ([]dto.TicketDTO, uint64, error) {
	builder := psql.Select(`
		t.id, t.folio, t.titulo, t.descripcion, t.status, t.priority, t.service_type,
		t.equipment_id, t.assigned_at, t.started_at, t.resolved_at, t.created_at, t.updated_at,
		reporter.id, reporter.nombre, tecnico.id, tecnico.nombre`).
		From("tickets t").
		Join("users reporter ON reporter.id = t.reporter_id").
		LeftJoin("users tecnico ON tecnico.id = t.assigned_to_id")

	countBuilder := psql.Select("COUNT(*)").From("tickets t")

	addWhere := func(cond interface{}, args ...interface{}) {
		builder = builder.Where(cond, args...)
		countBuilder = countBuilder.Where(cond, args...)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		addWhere(sq.Or{sq.ILike{"t.titulo": like}, sq.ILike{"t.descripcion": like}, sq.ILike{"t.folio": like}})
	}
	for _, campo := range []string{"status", "priority", "service_type", "reporter_id", "assigned_to_id", "equipment_id"} {
		if v, ok := filter.Filter[campo]; ok {
			addWhere(sq.Eq{"t." + campo: v})
		}
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando tickets: %w", err)
	}

	orderBy := "t.created_at DESC"
	if dir, ok := filter.Sort["created_at"]; ok && dir == "asc" {
		orderBy = "t.created_at ASC"
	}

	querySQL, args, err := builder.
		OrderBy(orderBy).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]dto.TicketDTO, 0)
	for rows.Next() {
		item, err := scanTicketListRow(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *item)
	}
	return tickets, total, rows.Err()
}

func scanTicketListRow(rows pgx.Rows) (*dto.TicketDTO, error) {
	var item dto.TicketDTO
	var equipmentID, tecnicoID *uint64
	var tecnicoNombre *string
	var assignedAt, startedAt, resolvedAt *time.Time
	var createdAt, updatedAt time.Time

	err := rows.Scan(
		&item.ID, &item.Folio, &item.Titulo, &item.Descripcion, &item.Status, &item.Priority,
		&item.ServiceType, &equipmentID, &assignedAt, &startedAt, &resolvedAt,
		&createdAt, &updatedAt,
		&item.Reporter.ID, &item.Reporter.Nombre, &tecnicoID, &tecnicoNombre,
	)
	if err != nil {
		return nil, fmt.Errorf("error escaneando ticket en lista: %w", err)
	}

	item.EquipmentID = equipmentID
	if tecnicoID != nil && tecnicoNombre != nil {
		item.Tecnico = &dto.ShortUserDTO{ID: *tecnicoID, Nombre: *tecnicoNombre}
	}
	item.AssignedAt = formatTimePtr(assignedAt)
	item.StartedAt = formatTimePtr(startedAt)
	item.ResolvedAt = formatTimePtr(resolvedAt)
	item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
	item.UpdatedAt = updatedAt.Local().Format("2006-01-02 15:04:05")
	item.Parts = []dto.TicketPartDTO{}
	return &item, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Local().Format("2006-01-02 15:04:05")
	return &s
}

func (r *TicketRepository) FindTicketDTO(ctx context.Context, id uint64) (*dto.TicketDTO, error) {
	ticket, err := r.FindTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item := &dto.TicketDTO{
		ID:          ticket.ID,
		Folio:       ticket.Folio,
		Titulo:      ticket.Titulo,
		Descripcion: ticket.Descripcion,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		ServiceType: string(ticket.ServiceType),
		EquipmentID: ticket.EquipmentID,
		Diagnosis:   ticket.Diagnosis,
		Solution:    ticket.Solution,
		Notes:       ticket.Notes,
		AssignedAt:  formatTimePtr(ticket.AssignedAt),
		StartedAt:   formatTimePtr(ticket.StartedAt),
		ResolvedAt:  formatTimePtr(ticket.ResolvedAt),
		CreatedAt:   ticket.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt:   ticket.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
	}

	item.Parts = make([]dto.TicketPartDTO, 0, len(ticket.Parts))
	for _, p := range ticket.Parts {
		item.Parts = append(item.Parts, dto.TicketPartDTO{Nombre: p.Nombre, Cantidad: p.Cantidad})
	}

	err = r.storage.QueryRow(ctx, `SELECT id, nombre FROM users WHERE id = $1`, ticket.ReporterID).
		Scan(&item.Reporter.ID, &item.Reporter.Nombre)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error leyendo reportante: %w", err)
	}
	if ticket.AssignedToID != nil {
		var tecnico dto.ShortUserDTO
		err = r.storage.QueryRow(ctx, `SELECT id, nombre FROM users WHERE id = $1`, *ticket.AssignedToID).
			Scan(&tecnico.ID, &tecnico.Nombre)
		if err == nil {
			item.Tecnico = &tecnico
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("error leyendo técnico asignado: %w", err)
		}
	}
	return item, nil
}

func (r *TicketRepository) FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.id = $1`
	ticket, err := scanTicket(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	parts, err := r.loadParts(ctx, r.storage, id)
	if err != nil {
		return nil, err
	}
	ticket.Parts = parts
	return ticket, nil
}

// FindTicketForUpdateInTx bloquea la fila del ticket durante la transacción;
// dos técnicos editando a la vez se serializan aquí.
func (r *TicketRepository) FindTicketForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.id = $1 FOR UPDATE`
	ticket, err := scanTicket(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	parts, err := r.loadParts(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	ticket.Parts = parts
	return ticket, nil
}

func (r *TicketRepository) CreateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO tickets (folio, titulo, descripcion, status, priority, service_type,
		                     reporter_id, assigned_to_id, equipment_id, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		ticket.Folio, ticket.Titulo, ticket.Descripcion, ticket.Status, ticket.Priority,
		ticket.ServiceType, ticket.ReporterID, ticket.AssignedToID, ticket.EquipmentID,
		ticket.AssignedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando ticket: %w", err)
	}
	if len(ticket.Parts) > 0 {
		if err := r.ReplacePartsInTx(ctx, tx, id, ticket.Parts); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *TicketRepository) UpdateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) error {
	tag, err := tx.Exec(ctx, `
		UPDATE tickets
		SET titulo = $1, descripcion = $2, status = $3, priority = $4, service_type = $5,
		    assigned_to_id = $6, equipment_id = $7, diagnosis = $8, solution = $9, notes = $10,
		    assigned_at = $11, started_at = $12, resolved_at = $13, updated_at = now()
		WHERE id = $14`,
		ticket.Titulo, ticket.Descripcion, ticket.Status, ticket.Priority, ticket.ServiceType,
		ticket.AssignedToID, ticket.EquipmentID, ticket.Diagnosis, ticket.Solution, ticket.Notes,
		ticket.AssignedAt, ticket.StartedAt, ticket.ResolvedAt, ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("error actualizando ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplacePartsInTx reemplaza la lista completa conservando el orden de captura.
func (r *TicketRepository) ReplacePartsInTx(ctx context.Context, tx pgx.Tx, ticketID uint64, parts []entities.TicketPart) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ticket_parts WHERE ticket_id = $1`, ticketID); err != nil {
		return fmt.Errorf("error limpiando refacciones: %w", err)
	}
	for i, p := range parts {
		_, err := tx.Exec(ctx, `
			INSERT INTO ticket_parts (ticket_id, position, nombre, cantidad)
			VALUES ($1, $2, $3, $4)`,
			ticketID, i, p.Nombre, p.Cantidad)
		if err != nil {
			return fmt.Errorf("error insertando refacción %q: %w", p.Nombre, err)
		}
	}
	return nil
}

func (r *TicketRepository) DeleteTicketInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ticket_parts WHERE ticket_id = $1`, id); err != nil {
		return fmt.Errorf("error eliminando refacciones del ticket: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error eliminando ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
