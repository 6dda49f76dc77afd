package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipmentByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

const equipmentColumns = `e.id, e.tipo, e.marca, e.modelo, e.numero_serie, e.estado, e.assigned_user_id, e.department_id, e.specs, e.created_at, e.updated_at`

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Tipo, &e.Marca, &e.Modelo, &e.NumeroSerie, &e.Estado,
		&e.AssignedUserID, &e.DepartmentID, &e.Specs, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error escaneando equipo: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	builder := psql.Select(equipmentColumns).From("equipment e")
	countBuilder := psql.Select("COUNT(*)").From("equipment e")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"e.tipo": like},
			sq.ILike{"e.marca": like},
			sq.ILike{"e.modelo": like},
			sq.ILike{"e.numero_serie": like},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	for _, campo := range []string{"estado", "department_id", "assigned_user_id"} {
		if v, ok := filter.Filter[campo]; ok {
			builder = builder.Where(sq.Eq{"e." + campo: v})
			countBuilder = countBuilder.Where(sq.Eq{"e." + campo: v})
		}
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando equipos: %w", err)
	}

	querySQL, args, err := builder.
		OrderBy("e.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando equipos: %w", err)
	}
	defer rows.Close()

	equipos := make([]entities.Equipment, 0)
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Tipo, &e.Marca, &e.Modelo, &e.NumeroSerie, &e.Estado,
			&e.AssignedUserID, &e.DepartmentID, &e.Specs, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error escaneando equipo en lista: %w", err)
		}
		equipos = append(equipos, e)
	}
	return equipos, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipmentByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment e WHERE e.id = $1`
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipment (tipo, marca, modelo, numero_serie, estado, assigned_user_id, department_id, specs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		equipment.Tipo, equipment.Marca, equipment.Modelo, equipment.NumeroSerie,
		equipment.Estado, equipment.AssignedUserID, equipment.DepartmentID, equipment.Specs,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando equipo: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE equipment
		SET tipo = $1, marca = $2, modelo = $3, numero_serie = $4, estado = $5,
		    assigned_user_id = $6, department_id = $7, specs = $8, updated_at = now()
		WHERE id = $9`,
		equipment.Tipo, equipment.Marca, equipment.Modelo, equipment.NumeroSerie,
		equipment.Estado, equipment.AssignedUserID, equipment.DepartmentID, equipment.Specs, id,
	)
	if err != nil {
		return fmt.Errorf("error actualizando equipo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error eliminando equipo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
