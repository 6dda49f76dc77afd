package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

type PermissionServiceInterface interface {
	GetCatalog(ctx context.Context) ([]dto.PermissionDTO, error)
	GetUserPermissions(ctx context.Context, userID uint64) ([]dto.UserPermissionDTO, error)
	Grant(ctx context.Context, otorganteID, userID uint64, payload dto.GrantPermissionDTO) error
	Revoke(ctx context.Context, userID uint64, module, action string) error
}

type PermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PermissionServiceInterface {
	return &PermissionService{
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (s *PermissionService) GetCatalog(ctx context.Context) ([]dto.PermissionDTO, error) {
	permisos, err := s.permissionRepo.GetPermissions(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionDTO, 0, len(permisos))
	for _, p := range permisos {
		items = append(items, dto.PermissionDTO{ID: p.ID, Module: string(p.Module), Action: string(p.Action)})
	}
	return items, nil
}

// GetUserPermissions lista todas las filas del usuario, revocadas incluidas:
// la vista de administración muestra el historial completo.
func (s *PermissionService) GetUserPermissions(ctx context.Context, userID uint64) ([]dto.UserPermissionDTO, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.permissionRepo.GetUserPermissionRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserPermissionDTO, 0, len(rows))
	for _, r := range rows {
		item := dto.UserPermissionDTO{
			ID:        r.ID,
			Module:    string(r.Module),
			Action:    string(r.Action),
			GrantedBy: r.GrantedBy,
			GrantedAt: r.GrantedAt.Format(time.RFC3339),
			IsActive:  r.IsActive,
		}
		if r.ExpiresAt != nil {
			exp := r.ExpiresAt.Format(time.RFC3339)
			item.ExpiresAt = &exp
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PermissionService) Grant(ctx context.Context, otorganteID, userID uint64, payload dto.GrantPermissionDTO) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}

	perm, err := s.permissionRepo.FindByModuleAction(ctx,
		entities.Module(payload.Module), entities.Action(payload.Action))
	if err != nil {
		return apperrors.NewInvalidInputError("el permiso %s:%s no existe en el catálogo", payload.Module, payload.Action)
	}

	var expiresAt *time.Time
	if payload.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *payload.ExpiresAt)
		if err != nil {
			return apperrors.NewInvalidInputError("expires_at debe ser una fecha RFC3339")
		}
		if !t.After(time.Now()) {
			return apperrors.NewInvalidInputError("expires_at debe ser una fecha futura")
		}
		expiresAt = &t
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		grant := entities.UserPermission{
			UserID:       userID,
			PermissionID: perm.ID,
			GrantedBy:    otorganteID,
			GrantedAt:    time.Now(),
			ExpiresAt:    expiresAt,
			IsActive:     true,
		}
		_, err := s.permissionRepo.GrantInTx(ctx, tx, grant)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("Permiso concedido",
		zap.Uint64("user_id", userID),
		zap.String("module", payload.Module),
		zap.String("action", payload.Action),
		zap.Uint64("granted_by", otorganteID))
	return nil
}

// Revoke desactiva la concesión; la fila permanece como rastro de auditoría.
func (s *PermissionService) Revoke(ctx context.Context, userID uint64, module, action string) error {
	perm, err := s.permissionRepo.FindByModuleAction(ctx,
		entities.Module(module), entities.Action(action))
	if err != nil {
		return apperrors.ErrNotFound
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.permissionRepo.RevokeInTx(ctx, tx, userID, perm.ID)
	})
}
