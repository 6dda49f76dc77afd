package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type DeletedTicketRepositoryInterface interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, tombstone entities.DeletedTicket) (uint64, error)
	GetDeletedTickets(ctx context.Context, filter types.Filter) ([]entities.DeletedTicket, uint64, error)
}

type DeletedTicketRepository struct {
	storage *pgxpool.Pool
}

func NewDeletedTicketRepository(storage *pgxpool.Pool) DeletedTicketRepositoryInterface {
	return &DeletedTicketRepository{storage: storage}
}

func (r *DeletedTicketRepository) InsertInTx(ctx context.Context, tx pgx.Tx, tombstone entities.DeletedTicket) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO deleted_tickets (ticket_id, folio, titulo, descripcion, status, priority,
		                             service_type, reporter_id, assigned_to_id, equipment_id,
		                             justificacion, deleted_by, deleted_at, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		tombstone.TicketID, tombstone.Folio, tombstone.Titulo, tombstone.Descripcion,
		tombstone.Status, tombstone.Priority, tombstone.ServiceType, tombstone.ReporterID,
		tombstone.AssignedToID, tombstone.EquipmentID, tombstone.Justificacion,
		tombstone.DeletedBy, tombstone.DeletedAt, tombstone.CreadoEn,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando lápida de ticket: %w", err)
	}
	return id, nil
}

func (r *DeletedTicketRepository) GetDeletedTickets(ctx context.Context, filter types.Filter) ([]entities.DeletedTicket, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM deleted_tickets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando tickets eliminados: %w", err)
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, ticket_id, folio, titulo, descripcion, status, priority, service_type,
		       reporter_id, assigned_to_id, equipment_id, justificacion, deleted_by,
		       deleted_at, creado_en
		FROM deleted_tickets
		ORDER BY deleted_at DESC
		LIMIT $1 OFFSET $2`,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando tickets eliminados: %w", err)
	}
	defer rows.Close()

	tombstones := make([]entities.DeletedTicket, 0)
	for rows.Next() {
		var t entities.DeletedTicket
		if err := rows.Scan(&t.ID, &t.TicketID, &t.Folio, &t.Titulo, &t.Descripcion,
			&t.Status, &t.Priority, &t.ServiceType, &t.ReporterID, &t.AssignedToID,
			&t.EquipmentID, &t.Justificacion, &t.DeletedBy, &t.DeletedAt, &t.CreadoEn); err != nil {
			return nil, 0, fmt.Errorf("error escaneando lápida: %w", err)
		}
		tombstones = append(tombstones, t)
	}
	return tombstones, total, rows.Err()
}
