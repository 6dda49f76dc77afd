package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type MovementRepositoryInterface interface {
	CreateMovementInTx(ctx context.Context, tx pgx.Tx, movement entities.InventoryMovement) (uint64, error)
	GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementDTO, uint64, error)
	GetMovementsByInsumo(ctx context.Context, insumoID uint64, filter types.Filter) ([]dto.MovementDTO, uint64, error)
	CountByTicket(ctx context.Context, ticketID uint64) (uint64, error)
}

type MovementRepository struct {
	storage *pgxpool.Pool
}

func NewMovementRepository(storage *pgxpool.Pool) MovementRepositoryInterface {
	return &MovementRepository{storage: storage}
}

func (r *MovementRepository) CreateMovementInTx(ctx context.Context, tx pgx.Tx, movement entities.InventoryMovement) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO inventory_movements (insumo_id, tipo, cantidad, ticket_id, usuario_id, referencia)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		movement.InsumoID, movement.Tipo, movement.Cantidad, movement.TicketID,
		movement.UsuarioID, movement.Referencia,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando movimiento de inventario: %w", err)
	}
	return id, nil
}

func (r *MovementRepository) getMovements(ctx context.Context, extra sq.Sqlizer, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	builder := psql.Select(`
		m.id, m.insumo_id, i.nombre, m.tipo, m.cantidad, m.ticket_id, m.usuario_id,
		m.referencia, m.created_at`).
		From("inventory_movements m").
		Join("insumos i ON i.id = m.insumo_id")
	countBuilder := psql.Select("COUNT(*)").
		From("inventory_movements m").
		Join("insumos i ON i.id = m.insumo_id")

	if extra != nil {
		builder = builder.Where(extra)
		countBuilder = countBuilder.Where(extra)
	}
	if tipo, ok := filter.Filter["tipo"]; ok {
		builder = builder.Where(sq.Eq{"m.tipo": tipo})
		countBuilder = countBuilder.Where(sq.Eq{"m.tipo": tipo})
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando movimientos: %w", err)
	}

	querySQL, args, err := builder.
		OrderBy("m.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando movimientos: %w", err)
	}
	defer rows.Close()

	movements := make([]dto.MovementDTO, 0)
	for rows.Next() {
		var m dto.MovementDTO
		var createdAt time.Time
		if err := rows.Scan(&m.ID, &m.InsumoID, &m.Insumo, &m.Tipo, &m.Cantidad,
			&m.TicketID, &m.UsuarioID, &m.Referencia, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("error escaneando movimiento: %w", err)
		}
		m.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		movements = append(movements, m)
	}
	return movements, total, rows.Err()
}

func (r *MovementRepository) GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	return r.getMovements(ctx, nil, filter)
}

func (r *MovementRepository) GetMovementsByInsumo(ctx context.Context, insumoID uint64, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	return r.getMovements(ctx, sq.Eq{"m.insumo_id": insumoID}, filter)
}

func (r *MovementRepository) CountByTicket(ctx context.Context, ticketID uint64) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_movements WHERE ticket_id = $1`, ticketID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error contando movimientos del ticket: %w", err)
	}
	return total, nil
}
