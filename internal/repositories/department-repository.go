package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartmentByID(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, dep entities.Department) (uint64, error)
	UpdateDepartment(ctx context.Context, id uint64, dep entities.Department) error
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
}

func NewDepartmentRepository(storage *pgxpool.Pool) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage}
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, nombre, is_active, created_at FROM departments ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("error listando departamentos: %w", err)
	}
	defer rows.Close()

	deps := make([]entities.Department, 0)
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.ID, &d.Nombre, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error escaneando departamento: %w", err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (r *DepartmentRepository) FindDepartmentByID(ctx context.Context, id uint64) (*entities.Department, error) {
	var d entities.Department
	err := r.storage.QueryRow(ctx,
		`SELECT id, nombre, is_active, created_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Nombre, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error buscando departamento: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, dep entities.Department) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO departments (nombre, is_active) VALUES ($1, true) RETURNING id`,
		dep.Nombre,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando departamento: %w", err)
	}
	return id, nil
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, dep entities.Department) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE departments SET nombre = $1, is_active = $2 WHERE id = $3`,
		dep.Nombre, dep.IsActive, id,
	)
	if err != nil {
		return fmt.Errorf("error actualizando departamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error eliminando departamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
