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

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type InsumoRepositoryInterface interface {
	GetInsumos(ctx context.Context, filter types.Filter) ([]entities.Insumo, uint64, error)
	FindInsumoByID(ctx context.Context, id uint64) (*entities.Insumo, error)
	CreateInsumoInTx(ctx context.Context, tx pgx.Tx, insumo entities.Insumo) (uint64, error)
	UpdateInsumo(ctx context.Context, id uint64, insumo entities.Insumo) error

	// FindByNombreForUpdateInTx bloquea la fila del insumo mientras se aplica
	// el movimiento, para que el decremento sea consistente bajo concurrencia.
	FindByNombreForUpdateInTx(ctx context.Context, tx pgx.Tx, nombre string) (*entities.Insumo, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Insumo, error)
	ApplyMovementInTx(ctx context.Context, tx pgx.Tx, insumoID uint64, nuevaCantidad int64, salida *entities.InventoryMovement) error
}

type InsumoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInsumoRepository(storage *pgxpool.Pool, logger *zap.Logger) InsumoRepositoryInterface {
	return &InsumoRepository{storage: storage, logger: logger}
}

const insumoColumns = `i.id, i.nombre, i.cantidad, i.stock_minimo, i.unidad, i.ubicacion, i.last_exit, i.last_exit_quantity, i.created_at, i.updated_at`

func scanInsumo(row pgx.Row) (*entities.Insumo, error) {
	var ins entities.Insumo
	err := row.Scan(&ins.ID, &ins.Nombre, &ins.Cantidad, &ins.StockMinimo, &ins.Unidad, &ins.Ubicacion,
		&ins.LastExit, &ins.LastExitQuantity, &ins.CreatedAt, &ins.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error escaneando insumo: %w", err)
	}
	return &ins, nil
}

func (r *InsumoRepository) GetInsumos(ctx context.Context, filter types.Filter) ([]entities.Insumo, uint64, error) {
	builder := psql.Select(insumoColumns).From("insumos i")
	countBuilder := psql.Select("COUNT(*)").From("insumos i")

	if filter.Search != "" {
		cond := sq.ILike{"i.nombre": "%" + filter.Search + "%"}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando insumos: %w", err)
	}

	querySQL, args, err := builder.
		OrderBy("i.nombre ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando insumos: %w", err)
	}
	defer rows.Close()

	insumos := make([]entities.Insumo, 0)
	for rows.Next() {
		var ins entities.Insumo
		if err := rows.Scan(&ins.ID, &ins.Nombre, &ins.Cantidad, &ins.StockMinimo, &ins.Unidad, &ins.Ubicacion,
			&ins.LastExit, &ins.LastExitQuantity, &ins.CreatedAt, &ins.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error escaneando insumo en lista: %w", err)
		}
		insumos = append(insumos, ins)
	}
	return insumos, total, rows.Err()
}

func (r *InsumoRepository) FindInsumoByID(ctx context.Context, id uint64) (*entities.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos i WHERE i.id = $1`
	return scanInsumo(r.storage.QueryRow(ctx, query, id))
}

func (r *InsumoRepository) CreateInsumoInTx(ctx context.Context, tx pgx.Tx, insumo entities.Insumo) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO insumos (nombre, cantidad, stock_minimo, unidad, ubicacion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		insumo.Nombre, insumo.Cantidad, insumo.StockMinimo, insumo.Unidad, insumo.Ubicacion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando insumo: %w", err)
	}
	return id, nil
}

// UpdateInsumo solo toca metadatos; la cantidad queda fuera a propósito.
func (r *InsumoRepository) UpdateInsumo(ctx context.Context, id uint64, insumo entities.Insumo) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE insumos SET nombre = $1, stock_minimo = $2, unidad = $3, ubicacion = $4, updated_at = now()
		WHERE id = $5`,
		insumo.Nombre, insumo.StockMinimo, insumo.Unidad, insumo.Ubicacion, id)
	if err != nil {
		return fmt.Errorf("error actualizando insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InsumoRepository) FindByNombreForUpdateInTx(ctx context.Context, tx pgx.Tx, nombre string) (*entities.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos i WHERE lower(i.nombre) = lower($1) FOR UPDATE`
	return scanInsumo(tx.QueryRow(ctx, query, nombre))
}

func (r *InsumoRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos i WHERE i.id = $1 FOR UPDATE`
	return scanInsumo(tx.QueryRow(ctx, query, id))
}

// ApplyMovementInTx fija la nueva cantidad y, si el movimiento es una salida,
// estampa last_exit/last_exit_quantity.
func (r *InsumoRepository) ApplyMovementInTx(ctx context.Context, tx pgx.Tx, insumoID uint64, nuevaCantidad int64, salida *entities.InventoryMovement) error {
	if salida != nil && salida.Cantidad < 0 {
		_, err := tx.Exec(ctx, `
			UPDATE insumos
			SET cantidad = $1, last_exit = $2, last_exit_quantity = $3, updated_at = now()
			WHERE id = $4`,
			nuevaCantidad, time.Now(), -salida.Cantidad, insumoID)
		if err != nil {
			return fmt.Errorf("error aplicando salida de insumo: %w", err)
		}
		return nil
	}
	_, err := tx.Exec(ctx, `UPDATE insumos SET cantidad = $1, updated_at = now() WHERE id = $2`,
		nuevaCantidad, insumoID)
	if err != nil {
		return fmt.Errorf("error aplicando movimiento de insumo: %w", err)
	}
	return nil
}
