package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUserInTx(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, user entities.User) error
	DeactivateUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `u.id, u.nombre, u.email, u.password_hash, u.role, u.department_id, u.is_active, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Role,
		&u.DepartmentID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error escaneando usuario: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	builder := psql.Select(userColumns).From("users u")
	countBuilder := psql.Select("COUNT(*)").From("users u")

	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"u.nombre": "%" + filter.Search + "%"},
			sq.ILike{"u.email": "%" + filter.Search + "%"},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if role, ok := filter.Filter["role"]; ok {
		builder = builder.Where(sq.Eq{"u.role": role})
		countBuilder = countBuilder.Where(sq.Eq{"u.role": role})
	}
	if dep, ok := filter.Filter["department_id"]; ok {
		builder = builder.Where(sq.Eq{"u.department_id": dep})
		countBuilder = countBuilder.Where(sq.Eq{"u.department_id": dep})
	}

	var total uint64
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error contando usuarios: %w", err)
	}

	querySQL, args, err := builder.
		OrderBy("u.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listando usuarios: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Role,
			&u.DepartmentID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error escaneando usuario en lista: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.id = $1`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE lower(u.email) = lower($1)`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) CreateUserInTx(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (nombre, email, password_hash, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Nombre, user.Email, user.PasswordHash, user.Role, user.DepartmentID, user.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando usuario: %w", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, user entities.User) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE users
		SET nombre = $1, email = $2, password_hash = $3, role = $4,
		    department_id = $5, is_active = $6, updated_at = now()
		WHERE id = $7`,
		user.Nombre, user.Email, user.PasswordHash, user.Role, user.DepartmentID, user.IsActive, id,
	)
	if err != nil {
		return fmt.Errorf("error actualizando usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeactivateUser(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error desactivando usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
