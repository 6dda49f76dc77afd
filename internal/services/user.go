package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	GetUserByID(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, creadorID uint64, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeactivateUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		departmentRepo: departmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// concesionesPorRol son las concesiones granulares que acompañan al alta según
// el rol, para los módulos que la política del rol deja en manos de permisos.
var concesionesPorRol = map[entities.Role][]struct {
	Module entities.Module
	Action entities.Action
}{
	entities.RoleTecnico: {
		{entities.ModuleSupplies, entities.ActionView},
		{entities.ModuleProfile, entities.ActionView},
		{entities.ModuleProfile, entities.ActionEdit},
	},
	entities.RoleInventario: {
		{entities.ModuleDashboard, entities.ActionView},
		{entities.ModuleProfile, entities.ActionView},
		{entities.ModuleProfile, entities.ActionEdit},
	},
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, s.aDTO(ctx, u))
	}
	return items, total, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := s.aDTO(ctx, *user)
	return &d, nil
}

// CreateUser da de alta al usuario y le concede los permisos base de su rol
// en la misma transacción: o queda todo o no queda nada.
func (s *UserService) CreateUser(ctx context.Context, creadorID uint64, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if existente, err := s.userRepo.FindUserByEmail(ctx, payload.Email); err == nil && existente != nil {
		return nil, apperrors.NewHttpError(409, "ya existe un usuario con ese correo", apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Nombre:       payload.Nombre,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         entities.Role(payload.Role),
		DepartmentID: payload.DepartmentID,
		IsActive:     true,
	}

	var userID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.userRepo.CreateUserInTx(ctx, tx, user)
		if err != nil {
			return err
		}
		userID = id

		for _, c := range concesionesPorRol[user.Role] {
			perm, err := s.permissionRepo.FindByModuleAction(ctx, c.Module, c.Action)
			if err != nil {
				return err
			}
			grant := entities.UserPermission{
				UserID:       userID,
				PermissionID: perm.ID,
				GrantedBy:    creadorID,
				GrantedAt:    time.Now(),
				IsActive:     true,
			}
			if _, err := s.permissionRepo.GrantInTx(ctx, tx, grant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Usuario creado",
		zap.Uint64("user_id", userID),
		zap.String("role", payload.Role),
		zap.Uint64("created_by", creadorID))

	return s.GetUserByID(ctx, userID)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Nombre != nil {
		user.Nombre = *payload.Nombre
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if payload.Role != nil {
		user.Role = entities.Role(*payload.Role)
	}
	if payload.DepartmentID != nil {
		user.DepartmentID = payload.DepartmentID
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, id, *user); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// DeactivateUser es una baja lógica: el historial de tickets y movimientos
// conserva la referencia al usuario.
func (s *UserService) DeactivateUser(ctx context.Context, id uint64) error {
	return s.userRepo.DeactivateUser(ctx, id)
}

func (s *UserService) aDTO(ctx context.Context, u entities.User) dto.UserDTO {
	d := dto.UserDTO{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
	if u.DepartmentID != nil {
		if dep, err := s.departmentRepo.FindDepartmentByID(ctx, *u.DepartmentID); err == nil {
			d.Departamento = &dep.Nombre
		}
	}
	return d
}
