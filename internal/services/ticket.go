package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
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

type TicketServiceInterface interface {
	GetTickets(ctx context.Context, actorID uint64, role entities.Role, filter types.Filter) ([]dto.TicketDTO, uint64, error)
	GetTicketByID(ctx context.Context, actorID uint64, role entities.Role, id uint64) (*dto.TicketDTO, error)
	CreateTicket(ctx context.Context, actorID uint64, role entities.Role, payload dto.CreateTicketDTO) (*dto.TicketDTO, error)
	UpdateTicket(ctx context.Context, actorID uint64, role entities.Role, id uint64, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error)
	DeleteTicket(ctx context.Context, actorID uint64, id uint64, payload dto.DeleteTicketDTO) error
	GetDeletedTickets(ctx context.Context, filter types.Filter) ([]dto.DeletedTicketDTO, uint64, error)
}

type TicketService struct {
	ticketRepo   repositories.TicketRepositoryInterface
	deletedRepo  repositories.DeletedTicketRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	insumoRepo   repositories.InsumoRepositoryInterface
	movementRepo repositories.MovementRepositoryInterface
	txManager    repositories.TxManagerInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewTicketService(
	ticketRepo repositories.TicketRepositoryInterface,
	deletedRepo repositories.DeletedTicketRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	insumoRepo repositories.InsumoRepositoryInterface,
	movementRepo repositories.MovementRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{
		ticketRepo:   ticketRepo,
		deletedRepo:  deletedRepo,
		userRepo:     userRepo,
		insumoRepo:   insumoRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		bus:          bus,
		logger:       logger,
	}
}

// GetTickets lista tickets. Un usuario final solo ve los suyos; el resto de
// roles ve todo el tablero.
func (s *TicketService) GetTickets(ctx context.Context, actorID uint64, role entities.Role, filter types.Filter) ([]dto.TicketDTO, uint64, error) {
	if role == entities.RoleUsuario {
		if filter.Filter == nil {
			filter.Filter = make(map[string]interface{})
		}
		filter.Filter["reporter_id"] = actorID
	}
	return s.ticketRepo.GetTickets(ctx, filter)
}

func (s *TicketService) GetTicketByID(ctx context.Context, actorID uint64, role entities.Role, id uint64) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.FindTicketDTO(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == entities.RoleUsuario && ticket.Reporter.ID != actorID {
		return nil, apperrors.ErrForbidden
	}
	return ticket, nil
}

func (s *TicketService) CreateTicket(ctx context.Context, actorID uint64, role entities.Role, payload dto.CreateTicketDTO) (*dto.TicketDTO, error) {
	now := time.Now()
	ticket := entities.Ticket{
		Folio:       uuid.NewString(),
		Titulo:      payload.Titulo,
		Descripcion: payload.Descripcion,
		Status:      entities.StatusNuevo,
		Priority:    entities.PrioritySinClasificar,
		ServiceType: entities.ServiceType(payload.ServiceType),
		ReporterID:  actorID,
		EquipmentID: payload.EquipmentID,
	}

	// Solo el personal técnico clasifica o asigna al crear; para usuario e
	// inventario los campos del payload se ignoran en silencio.
	if role.EsPersonalTecnico() {
		if payload.Priority != nil {
			ticket.Priority = entities.TicketPriority(*payload.Priority)
		}
		if payload.AssignedToID != nil {
			if err := s.validarAsignado(ctx, *payload.AssignedToID); err != nil {
				return nil, err
			}
			ticket.AssignedToID = payload.AssignedToID
		}
	}
	EstamparTiempos(&ticket, now)

	var ticketID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.ticketRepo.CreateTicketInTx(ctx, tx, ticket)
		if err != nil {
			return err
		}
		ticketID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ticket.AssignedToID != nil {
		s.bus.Publish(ctx, events.TicketAsignadoEvent{
			TicketID:  ticketID,
			Folio:     ticket.Folio,
			Titulo:    ticket.Titulo,
			TecnicoID: *ticket.AssignedToID,
		})
	}

	s.logger.Info("Ticket creado",
		zap.Uint64("ticket_id", ticketID),
		zap.String("folio", ticket.Folio),
		zap.Uint64("reporter_id", actorID))

	return s.ticketRepo.FindTicketDTO(ctx, ticketID)
}

func (s *TicketService) UpdateTicket(ctx context.Context, actorID uint64, role entities.Role, id uint64, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error) {
	if !role.EsPersonalTecnico() && tocaCamposTecnicos(payload) {
		return nil, apperrors.ErrEdicionReservadaATecnico
	}
	if payload.AssignedToID != nil {
		if err := s.validarAsignado(ctx, *payload.AssignedToID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var (
		asignadoNuevo *uint64
		cerradoAhora  bool
		folio, titulo string
		reporterID    uint64
	)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ticket, err := s.ticketRepo.FindTicketForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if ticket.Status == entities.StatusCerrado {
			return apperrors.ErrTicketCerrado
		}

		estadoPrevio := ticket.Status
		asignadoPrevio := ticket.AssignedToID
		partesPrevias := ticket.Parts

		aplicarCambios(ticket, payload)

		if err := ValidarTransicion(estadoPrevio, ticket.Status); err != nil {
			return err
		}
		EstamparTiempos(ticket, now)

		if payload.Parts != nil {
			nuevas := make([]entities.TicketPart, 0, len(*payload.Parts))
			for _, p := range *payload.Parts {
				nuevas = append(nuevas, entities.TicketPart{Nombre: p.Nombre, Cantidad: p.Cantidad})
			}
			delta := CalcularDeltaRefacciones(partesPrevias, nuevas)
			if err := s.aplicarDeltaInventario(ctx, tx, ticket.ID, actorID, delta); err != nil {
				return err
			}
			if err := s.ticketRepo.ReplacePartsInTx(ctx, tx, ticket.ID, nuevas); err != nil {
				return err
			}
			ticket.Parts = nuevas
		}

		if err := s.ticketRepo.UpdateTicketInTx(ctx, tx, *ticket); err != nil {
			return err
		}

		if ticket.AssignedToID != nil &&
			(asignadoPrevio == nil || *asignadoPrevio != *ticket.AssignedToID) {
			asignadoNuevo = ticket.AssignedToID
		}
		cerradoAhora = estadoPrevio != entities.StatusCerrado && ticket.Status == entities.StatusCerrado
		folio, titulo, reporterID = ticket.Folio, ticket.Titulo, ticket.ReporterID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if asignadoNuevo != nil {
		s.bus.Publish(ctx, events.TicketAsignadoEvent{
			TicketID: id, Folio: folio, Titulo: titulo, TecnicoID: *asignadoNuevo,
		})
	}
	if cerradoAhora {
		s.bus.Publish(ctx, events.TicketCerradoEvent{
			TicketID: id, Folio: folio, Titulo: titulo, ReporterID: reporterID,
		})
	}

	return s.ticketRepo.FindTicketDTO(ctx, id)
}

// DeleteTicket mueve el ticket a la tabla de eliminados junto con la
// justificación y borra el original, todo en la misma transacción.
func (s *TicketService) DeleteTicket(ctx context.Context, actorID uint64, id uint64, payload dto.DeleteTicketDTO) error {
	if payload.Justificacion == "" {
		return apperrors.ErrJustificacionRequerida
	}

	// Los movimientos de inventario del ticket no se borran: el kardex es
	// permanente y la lápida conserva el folio para rastrearlos.
	movimientos, err := s.movementRepo.CountByTicket(ctx, id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		ticket, err := s.ticketRepo.FindTicketForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		tombstone := entities.DeletedTicket{
			TicketID:      ticket.ID,
			Folio:         ticket.Folio,
			Titulo:        ticket.Titulo,
			Descripcion:   ticket.Descripcion,
			Status:        ticket.Status,
			Priority:      ticket.Priority,
			ServiceType:   ticket.ServiceType,
			ReporterID:    ticket.ReporterID,
			AssignedToID:  ticket.AssignedToID,
			EquipmentID:   ticket.EquipmentID,
			Justificacion: payload.Justificacion,
			DeletedBy:     actorID,
			DeletedAt:     time.Now(),
			CreadoEn:      ticket.CreatedAt,
		}
		if _, err := s.deletedRepo.InsertInTx(ctx, tx, tombstone); err != nil {
			return err
		}
		if err := s.ticketRepo.DeleteTicketInTx(ctx, tx, ticket.ID); err != nil {
			return err
		}

		s.logger.Info("Ticket eliminado con justificación",
			zap.Uint64("ticket_id", ticket.ID),
			zap.String("folio", ticket.Folio),
			zap.Uint64("deleted_by", actorID),
			zap.Uint64("movimientos_inventario", movimientos))
		return nil
	})
}

func (s *TicketService) GetDeletedTickets(ctx context.Context, filter types.Filter) ([]dto.DeletedTicketDTO, uint64, error) {
	tombstones, total, err := s.deletedRepo.GetDeletedTickets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.DeletedTicketDTO, 0, len(tombstones))
	for _, t := range tombstones {
		items = append(items, dto.DeletedTicketDTO{
			ID:            t.ID,
			TicketID:      t.TicketID,
			Folio:         t.Folio,
			Titulo:        t.Titulo,
			Status:        string(t.Status),
			Justificacion: t.Justificacion,
			DeletedBy:     t.DeletedBy,
			DeletedAt:     t.DeletedAt.Format(time.RFC3339),
			CreadoEn:      t.CreadoEn.Format(time.RFC3339),
		})
	}
	return items, total, nil
}

// aplicarDeltaInventario descuenta (o repone) insumos según el delta de
// refacciones del ticket. Consumo adicional genera un movimiento TICKET con
// cantidad negativa; una devolución genera un ADJUSTMENT positivo. Un insumo
// inexistente en almacén se omite con aviso; el stock nunca baja de cero.
func (s *TicketService) aplicarDeltaInventario(ctx context.Context, tx pgx.Tx, ticketID, actorID uint64, delta map[string]int64) error {
	// Los bloqueos FOR UPDATE se toman siempre en el mismo orden para que dos
	// actualizaciones concurrentes sobre los mismos insumos no se interbloqueen.
	nombres := make([]string, 0, len(delta))
	for nombre := range delta {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)

	for _, nombre := range nombres {
		d := delta[nombre]
		insumo, err := s.insumoRepo.FindByNombreForUpdateInTx(ctx, tx, nombre)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("Refacción sin insumo en almacén, movimiento omitido",
					zap.String("nombre", nombre),
					zap.Uint64("ticket_id", ticketID))
				continue
			}
			return err
		}

		var movimiento entities.InventoryMovement
		nuevaCantidad := insumo.Cantidad

		if d > 0 {
			movimiento = entities.InventoryMovement{
				InsumoID:   insumo.ID,
				Tipo:       entities.MovementTicket,
				Cantidad:   -d,
				TicketID:   &ticketID,
				UsuarioID:  actorID,
				Referencia: fmt.Sprintf("Consumo del ticket #%d", ticketID),
			}
			nuevaCantidad -= d
			if nuevaCantidad < 0 {
				s.logger.Warn("Stock insuficiente, se ajusta a cero",
					zap.String("insumo", insumo.Nombre),
					zap.Int64("solicitado", d),
					zap.Int64("disponible", insumo.Cantidad))
				nuevaCantidad = 0
			}
		} else {
			movimiento = entities.InventoryMovement{
				InsumoID:   insumo.ID,
				Tipo:       entities.MovementAdjustment,
				Cantidad:   -d,
				TicketID:   &ticketID,
				UsuarioID:  actorID,
				Referencia: fmt.Sprintf("Devolución del ticket #%d", ticketID),
			}
			nuevaCantidad += -d
		}

		if _, err := s.movementRepo.CreateMovementInTx(ctx, tx, movimiento); err != nil {
			return err
		}
		if err := s.insumoRepo.ApplyMovementInTx(ctx, tx, insumo.ID, nuevaCantidad, &movimiento); err != nil {
			return err
		}

		if nuevaCantidad <= insumo.StockMinimo {
			s.bus.Publish(ctx, events.StockBajoEvent{
				InsumoID: insumo.ID,
				Nombre:   insumo.Nombre,
				Cantidad: nuevaCantidad,
				Minimo:   insumo.StockMinimo,
			})
		}
	}
	return nil
}

func (s *TicketService) validarAsignado(ctx context.Context, tecnicoID uint64) error {
	tecnico, err := s.userRepo.FindUserByID(ctx, tecnicoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrAsignadoNoEsTecnico
		}
		return err
	}
	if !tecnico.IsActive || !tecnico.Role.EsPersonalTecnico() {
		return apperrors.ErrAsignadoNoEsTecnico
	}
	return nil
}

// tocaCamposTecnicos detecta si el payload intenta modificar campos
// reservados al personal técnico.
func tocaCamposTecnicos(p dto.UpdateTicketDTO) bool {
	return p.Status != nil || p.Priority != nil || p.AssignedToID != nil ||
		p.Diagnosis != nil || p.Solution != nil || p.Parts != nil
}

func aplicarCambios(t *entities.Ticket, p dto.UpdateTicketDTO) {
	if p.Titulo != nil {
		t.Titulo = *p.Titulo
	}
	if p.Descripcion != nil {
		t.Descripcion = *p.Descripcion
	}
	if p.Status != nil {
		t.Status = entities.TicketStatus(*p.Status)
	}
	if p.Priority != nil {
		t.Priority = entities.TicketPriority(*p.Priority)
	}
	if p.ServiceType != nil {
		t.ServiceType = entities.ServiceType(*p.ServiceType)
	}
	if p.AssignedToID != nil {
		t.AssignedToID = p.AssignedToID
	}
	if p.EquipmentID != nil {
		t.EquipmentID = p.EquipmentID
	}
	if p.Diagnosis != nil {
		t.Diagnosis = p.Diagnosis
	}
	if p.Solution != nil {
		t.Solution = p.Solution
	}
	if p.Notes != nil {
		t.Notes = p.Notes
	}
}
