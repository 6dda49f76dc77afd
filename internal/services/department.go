package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context) ([]dto.DepartmentDTO, error)
	GetDepartmentByID(ctx context.Context, id uint64) (*dto.DepartmentDTO, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error)
	UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface, logger *zap.Logger) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context) ([]dto.DepartmentDTO, error) {
	deps, err := s.departmentRepo.GetDepartments(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepartmentDTO, 0, len(deps))
	for _, d := range deps {
		items = append(items, dto.DepartmentDTO{ID: d.ID, Nombre: d.Nombre, IsActive: d.IsActive})
	}
	return items, nil
}

func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id uint64) (*dto.DepartmentDTO, error) {
	dep, err := s.departmentRepo.FindDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentDTO{ID: dep.ID, Nombre: dep.Nombre, IsActive: dep.IsActive}, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error) {
	id, err := s.departmentRepo.CreateDepartment(ctx, entities.Department{Nombre: payload.Nombre, IsActive: true})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Departamento creado", zap.Uint64("department_id", id), zap.String("nombre", payload.Nombre))
	return s.GetDepartmentByID(ctx, id)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error) {
	dep, err := s.departmentRepo.FindDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Nombre != nil {
		dep.Nombre = *payload.Nombre
	}
	if payload.IsActive != nil {
		dep.IsActive = *payload.IsActive
	}
	if err := s.departmentRepo.UpdateDepartment(ctx, id, *dep); err != nil {
		return nil, err
	}
	return s.GetDepartmentByID(ctx, id)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	return s.departmentRepo.DeleteDepartment(ctx, id)
}
