package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/events"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/eventbus"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type InsumoServiceInterface interface {
	GetInsumos(ctx context.Context, filter types.Filter) ([]dto.InsumoDTO, uint64, error)
	GetInsumoByID(ctx context.Context, id uint64) (*dto.InsumoDTO, error)
	CreateInsumo(ctx context.Context, actorID uint64, payload dto.CreateInsumoDTO) (*dto.InsumoDTO, error)
	UpdateInsumo(ctx context.Context, id uint64, payload dto.UpdateInsumoDTO) (*dto.InsumoDTO, error)
	RegisterMovement(ctx context.Context, actorID, insumoID uint64, payload dto.CreateMovementDTO) (*dto.InsumoDTO, error)
	GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementDTO, uint64, error)
	GetMovementsByInsumo(ctx context.Context, insumoID uint64, filter types.Filter) ([]dto.MovementDTO, uint64, error)
}

// InsumoService gobierna el almacén. La cantidad de un insumo solo cambia a
// través de movimientos; cada cambio deja su línea en el kardex.
type InsumoService struct {
	insumoRepo   repositories.InsumoRepositoryInterface
	movementRepo repositories.MovementRepositoryInterface
	txManager    repositories.TxManagerInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewInsumoService(
	insumoRepo repositories.InsumoRepositoryInterface,
	movementRepo repositories.MovementRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) InsumoServiceInterface {
	return &InsumoService{
		insumoRepo:   insumoRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		bus:          bus,
		logger:       logger,
	}
}

func (s *InsumoService) GetInsumos(ctx context.Context, filter types.Filter) ([]dto.InsumoDTO, uint64, error) {
	insumos, total, err := s.insumoRepo.GetInsumos(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.InsumoDTO, 0, len(insumos))
	for _, ins := range insumos {
		items = append(items, aInsumoDTO(ins))
	}
	return items, total, nil
}

func (s *InsumoService) GetInsumoByID(ctx context.Context, id uint64) (*dto.InsumoDTO, error) {
	insumo, err := s.insumoRepo.FindInsumoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := aInsumoDTO(*insumo)
	return &d, nil
}

// CreateInsumo da de alta el insumo y registra su existencia inicial como
// movimiento INITIAL en la misma transacción.
func (s *InsumoService) CreateInsumo(ctx context.Context, actorID uint64, payload dto.CreateInsumoDTO) (*dto.InsumoDTO, error) {
	insumo := entities.Insumo{
		Nombre:      payload.Nombre,
		Cantidad:    payload.CantidadInicial,
		StockMinimo: payload.StockMinimo,
		Unidad:      payload.Unidad,
		Ubicacion:   payload.Ubicacion,
	}

	var insumoID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.insumoRepo.CreateInsumoInTx(ctx, tx, insumo)
		if err != nil {
			return err
		}
		insumoID = id

		if payload.CantidadInicial > 0 {
			_, err = s.movementRepo.CreateMovementInTx(ctx, tx, entities.InventoryMovement{
				InsumoID:   insumoID,
				Tipo:       entities.MovementInitial,
				Cantidad:   payload.CantidadInicial,
				UsuarioID:  actorID,
				Referencia: "Existencia inicial",
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Insumo registrado",
		zap.Uint64("insumo_id", insumoID),
		zap.String("nombre", payload.Nombre),
		zap.Int64("cantidad_inicial", payload.CantidadInicial))

	return s.GetInsumoByID(ctx, insumoID)
}

func (s *InsumoService) UpdateInsumo(ctx context.Context, id uint64, payload dto.UpdateInsumoDTO) (*dto.InsumoDTO, error) {
	insumo, err := s.insumoRepo.FindInsumoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Nombre != nil {
		insumo.Nombre = *payload.Nombre
	}
	if payload.StockMinimo != nil {
		insumo.StockMinimo = *payload.StockMinimo
	}
	if payload.Unidad != nil {
		insumo.Unidad = *payload.Unidad
	}
	if payload.Ubicacion != nil {
		insumo.Ubicacion = *payload.Ubicacion
	}

	if err := s.insumoRepo.UpdateInsumo(ctx, id, *insumo); err != nil {
		return nil, err
	}
	return s.GetInsumoByID(ctx, id)
}

// RegisterMovement aplica una entrada o salida manual. La fila del insumo se
// bloquea durante la transacción; una salida mayor al stock disponible se
// rechaza con conflicto.
func (s *InsumoService) RegisterMovement(ctx context.Context, actorID, insumoID uint64, payload dto.CreateMovementDTO) (*dto.InsumoDTO, error) {
	tipo := entities.MovementType(payload.Tipo)
	if !tipo.Valido() || tipo == entities.MovementTicket || tipo == entities.MovementInitial {
		return nil, apperrors.NewInvalidInputError("tipo de movimiento no permitido: %s", payload.Tipo)
	}

	var stockBajo *events.StockBajoEvent
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		insumo, err := s.insumoRepo.FindForUpdateInTx(ctx, tx, insumoID)
		if err != nil {
			return err
		}

		nuevaCantidad := insumo.Cantidad + payload.Cantidad
		if nuevaCantidad < 0 {
			return apperrors.NewHttpError(409,
				"la salida excede la existencia disponible", apperrors.ErrConflict)
		}

		movimiento := entities.InventoryMovement{
			InsumoID:   insumoID,
			Tipo:       tipo,
			Cantidad:   payload.Cantidad,
			UsuarioID:  actorID,
			Referencia: payload.Referencia,
		}
		if _, err := s.movementRepo.CreateMovementInTx(ctx, tx, movimiento); err != nil {
			return err
		}
		if err := s.insumoRepo.ApplyMovementInTx(ctx, tx, insumoID, nuevaCantidad, &movimiento); err != nil {
			return err
		}

		if nuevaCantidad <= insumo.StockMinimo {
			stockBajo = &events.StockBajoEvent{
				InsumoID: insumoID,
				Nombre:   insumo.Nombre,
				Cantidad: nuevaCantidad,
				Minimo:   insumo.StockMinimo,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if stockBajo != nil {
		s.bus.Publish(ctx, *stockBajo)
	}
	return s.GetInsumoByID(ctx, insumoID)
}

func (s *InsumoService) GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	return s.movementRepo.GetMovements(ctx, filter)
}

func (s *InsumoService) GetMovementsByInsumo(ctx context.Context, insumoID uint64, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	if _, err := s.insumoRepo.FindInsumoByID(ctx, insumoID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.ErrNotFound
		}
		return nil, 0, err
	}
	return s.movementRepo.GetMovementsByInsumo(ctx, insumoID, filter)
}

func aInsumoDTO(ins entities.Insumo) dto.InsumoDTO {
	d := dto.InsumoDTO{
		ID:          ins.ID,
		Nombre:      ins.Nombre,
		Cantidad:    ins.Cantidad,
		StockMinimo: ins.StockMinimo,
		Unidad:      ins.Unidad,
		Ubicacion:   ins.Ubicacion,
	}
	if ins.LastExit != nil {
		f := ins.LastExit.Format(time.RFC3339)
		d.LastExit = &f
	}
	d.LastExitQuantity = ins.LastExitQuantity
	return d
}
