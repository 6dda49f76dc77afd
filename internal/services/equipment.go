package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	GetEquipmentByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	equipos, total, err := s.equipmentRepo.GetEquipment(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.EquipmentDTO, 0, len(equipos))
	for _, e := range equipos {
		items = append(items, s.aDTO(ctx, e))
	}
	return items, total, nil
}

func (s *EquipmentService) GetEquipmentByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipo, err := s.equipmentRepo.FindEquipmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := s.aDTO(ctx, *equipo)
	return &d, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipo := entities.Equipment{
		Tipo:           payload.Tipo,
		Marca:          payload.Marca,
		Modelo:         payload.Modelo,
		NumeroSerie:    payload.NumeroSerie,
		Estado:         entities.EquipmentStatus(payload.Estado),
		AssignedUserID: payload.AssignedUserID,
		DepartmentID:   payload.DepartmentID,
		Specs:          payload.Specs,
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, equipo)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Equipo registrado",
		zap.Uint64("equipment_id", id),
		zap.String("numero_serie", payload.NumeroSerie))

	return s.GetEquipmentByID(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipo, err := s.equipmentRepo.FindEquipmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Tipo != nil {
		equipo.Tipo = *payload.Tipo
	}
	if payload.Marca != nil {
		equipo.Marca = *payload.Marca
	}
	if payload.Modelo != nil {
		equipo.Modelo = *payload.Modelo
	}
	if payload.NumeroSerie != nil {
		equipo.NumeroSerie = *payload.NumeroSerie
	}
	if payload.Estado != nil {
		equipo.Estado = entities.EquipmentStatus(*payload.Estado)
	}
	if payload.AssignedUserID != nil {
		equipo.AssignedUserID = payload.AssignedUserID
	}
	if payload.DepartmentID != nil {
		equipo.DepartmentID = payload.DepartmentID
	}
	if payload.Specs != nil {
		equipo.Specs = payload.Specs
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, *equipo); err != nil {
		return nil, err
	}
	return s.GetEquipmentByID(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func (s *EquipmentService) aDTO(ctx context.Context, e entities.Equipment) dto.EquipmentDTO {
	d := dto.EquipmentDTO{
		ID:             e.ID,
		Tipo:           e.Tipo,
		Marca:          e.Marca,
		Modelo:         e.Modelo,
		NumeroSerie:    e.NumeroSerie,
		Estado:         string(e.Estado),
		AssignedUserID: e.AssignedUserID,
		DepartmentID:   e.DepartmentID,
		Specs:          e.Specs,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.AssignedUserID != nil {
		if u, err := s.userRepo.FindUserByID(ctx, *e.AssignedUserID); err == nil {
			d.AsignadoA = &u.Nombre
		}
	}
	if e.DepartmentID != nil {
		if dep, err := s.departmentRepo.FindDepartmentByID(ctx, *e.DepartmentID); err == nil {
			d.Departamento = &dep.Nombre
		}
	}
	return d
}
