package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
	FindByModuleAction(ctx context.Context, module entities.Module, action entities.Action) (*entities.Permission, error)

	// GetUserGrants lee las concesiones frescas de la base; se invoca en cada
	// evaluación porque la expiración depende del instante actual.
	GetUserGrants(ctx context.Context, userID uint64) ([]entities.UserPermission, error)
	GrantInTx(ctx context.Context, tx pgx.Tx, grant entities.UserPermission) (uint64, error)
	RevokeInTx(ctx context.Context, tx pgx.Tx, userID, permissionID uint64) error
	GetUserPermissionRows(ctx context.Context, userID uint64) ([]entities.UserPermission, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermissionRepository(storage *pgxpool.Pool, logger *zap.Logger) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage, logger: logger}
}

func (r *PermissionRepository) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, module, action, created_at, updated_at
		FROM permissions
		ORDER BY module, action`)
	if err != nil {
		return nil, fmt.Errorf("error listando permisos: %w", err)
	}
	defer rows.Close()

	perms := make([]entities.Permission, 0)
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Module, &p.Action, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error escaneando permiso: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) FindByModuleAction(ctx context.Context, module entities.Module, action entities.Action) (*entities.Permission, error) {
	var p entities.Permission
	err := r.storage.QueryRow(ctx, `
		SELECT id, module, action, created_at, updated_at
		FROM permissions WHERE module = $1 AND action = $2`,
		module, action,
	).Scan(&p.ID, &p.Module, &p.Action, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error buscando permiso: %w", err)
	}
	return &p, nil
}

const userGrantColumns = `
	up.id, up.user_id, up.permission_id, p.module, p.action,
	up.granted_by, up.granted_at, up.expires_at, up.is_active`

func (r *PermissionRepository) scanGrants(rows pgx.Rows) ([]entities.UserPermission, error) {
	defer rows.Close()
	grants := make([]entities.UserPermission, 0)
	for rows.Next() {
		var g entities.UserPermission
		if err := rows.Scan(&g.ID, &g.UserID, &g.PermissionID, &g.Module, &g.Action,
			&g.GrantedBy, &g.GrantedAt, &g.ExpiresAt, &g.IsActive); err != nil {
			return nil, fmt.Errorf("error escaneando concesión: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// GetUserGrants devuelve solo las filas activas; la expiración la decide el
// evaluador contra time.Now() para que el corte sea consistente por petición.
func (r *PermissionRepository) GetUserGrants(ctx context.Context, userID uint64) ([]entities.UserPermission, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+userGrantColumns+`
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1 AND up.is_active = true`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error leyendo concesiones del usuario: %w", err)
	}
	return r.scanGrants(rows)
}

// GetUserPermissionRows lista todas las filas, incluidas revocadas y
// expiradas, para la pantalla de administración.
func (r *PermissionRepository) GetUserPermissionRows(ctx context.Context, userID uint64) ([]entities.UserPermission, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+userGrantColumns+`
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1
		ORDER BY up.granted_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error leyendo historial de concesiones: %w", err)
	}
	return r.scanGrants(rows)
}

func (r *PermissionRepository) GrantInTx(ctx context.Context, tx pgx.Tx, grant entities.UserPermission) (uint64, error) {
	var id uint64
	var expires interface{}
	if grant.ExpiresAt != nil {
		expires = *grant.ExpiresAt
	}
	err := tx.QueryRow(ctx, `
		INSERT INTO user_permissions (user_id, permission_id, granted_by, granted_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (user_id, permission_id)
		DO UPDATE SET granted_by = EXCLUDED.granted_by, granted_at = EXCLUDED.granted_at,
		              expires_at = EXCLUDED.expires_at, is_active = true
		RETURNING id`,
		grant.UserID, grant.PermissionID, grant.GrantedBy, time.Now(), expires,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error concediendo permiso: %w", err)
	}
	return id, nil
}

// RevokeInTx es una baja lógica: la fila queda como rastro de auditoría.
func (r *PermissionRepository) RevokeInTx(ctx context.Context, tx pgx.Tx, userID, permissionID uint64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE user_permissions SET is_active = false
		WHERE user_id = $1 AND permission_id = $2`,
		userID, permissionID)
	if err != nil {
		return fmt.Errorf("error revocando permiso: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
