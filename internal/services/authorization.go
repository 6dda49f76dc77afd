package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/authz"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

type AuthorizationServiceInterface interface {
	Can(ctx context.Context, userID uint64, module entities.Module, action entities.Action) (bool, error)
	ModulesFor(ctx context.Context, userID uint64) ([]entities.Module, error)
}

// AuthorizationService carga al actor y sus concesiones frescas de la base en
// cada verificación y delega el veredicto al evaluador. No cachea: la
// expiración de una concesión debe surtir efecto de inmediato.
type AuthorizationService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	evaluator      *authz.Evaluator
	logger         *zap.Logger
}

func NewAuthorizationService(
	userRepo repositories.UserRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	evaluator *authz.Evaluator,
	logger *zap.Logger,
) AuthorizationServiceInterface {
	return &AuthorizationService{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		evaluator:      evaluator,
		logger:         logger,
	}
}

func (s *AuthorizationService) Can(ctx context.Context, userID uint64, module entities.Module, action entities.Action) (bool, error) {
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	grants, err := s.permissionRepo.GetUserGrants(ctx, userID)
	if err != nil {
		return false, err
	}

	permitido := s.evaluator.HasPermission(actor, grants, module, action)
	if !permitido {
		s.logger.Debug("Acceso denegado",
			zap.Uint64("user_id", userID),
			zap.String("module", string(module)),
			zap.String("action", string(action)))
	}
	return permitido, nil
}

// ModulesFor devuelve los módulos visibles para el usuario; alimenta el menú
// del cliente.
func (s *AuthorizationService) ModulesFor(ctx context.Context, userID uint64) ([]entities.Module, error) {
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	grants, err := s.permissionRepo.GetUserGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	visibles := make([]entities.Module, 0, len(entities.Modules))
	for _, m := range entities.Modules {
		if s.evaluator.HasModuleAccess(actor, grants, m) {
			visibles = append(visibles, m)
		}
	}
	return visibles, nil
}
