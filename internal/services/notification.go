package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/events"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/eventbus"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type NotificationServiceInterface interface {
	GetNotifications(ctx context.Context, userID uint64, filter types.Filter) ([]dto.NotificationDTO, uint64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// RegisterListeners suscribe el servicio a los eventos del dominio que se
// traducen en notificaciones.
func (s *NotificationService) RegisterListeners(bus *eventbus.Bus) {
	bus.Subscribe(events.TicketAsignado, s.onTicketAsignado)
	bus.Subscribe(events.TicketCerrado, s.onTicketCerrado)
	bus.Subscribe(events.StockBajo, s.onStockBajo)
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uint64, filter types.Filter) ([]dto.NotificationDTO, uint64, error) {
	soloNoLeidas := false
	if v, ok := filter.Filter["unread"]; ok && v == "true" {
		soloNoLeidas = true
	}

	limit := uint64(filter.Limit)
	if limit == 0 {
		limit = 50
	}
	items, err := s.notificationRepo.GetByUser(ctx, userID, soloNoLeidas, limit)
	if err != nil {
		return nil, 0, err
	}
	noLeidas, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.NotificationDTO, 0, len(items))
	for _, n := range items {
		result = append(result, dto.NotificationDTO{
			ID:        n.ID,
			Tipo:      string(n.Tipo),
			Mensaje:   n.Mensaje,
			TicketID:  n.TicketID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, noLeidas, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	return s.notificationRepo.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) onTicketAsignado(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.TicketAsignadoEvent)
	if !ok {
		return nil
	}
	_, err := s.notificationRepo.Create(ctx, entities.Notification{
		UserID:   e.TecnicoID,
		Tipo:     entities.NotifTicketAsignado,
		Mensaje:  fmt.Sprintf("Se te asignó el ticket %s: %s", e.Folio, e.Titulo),
		TicketID: &e.TicketID,
	})
	return err
}

func (s *NotificationService) onTicketCerrado(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.TicketCerradoEvent)
	if !ok {
		return nil
	}
	_, err := s.notificationRepo.Create(ctx, entities.Notification{
		UserID:   e.ReporterID,
		Tipo:     entities.NotifTicketCerrado,
		Mensaje:  fmt.Sprintf("Tu ticket %s fue cerrado: %s", e.Folio, e.Titulo),
		TicketID: &e.TicketID,
	})
	return err
}

// onStockBajo avisa a todo el personal de inventario y a los administradores.
func (s *NotificationService) onStockBajo(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.StockBajoEvent)
	if !ok {
		return nil
	}

	filter := types.Filter{Limit: 200}
	destinatarios, _, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return err
	}
	mensaje := fmt.Sprintf("Stock bajo de %s: quedan %d (mínimo %d)", e.Nombre, e.Cantidad, e.Minimo)
	for _, u := range destinatarios {
		if !u.IsActive || (u.Role != entities.RoleInventario && u.Role != entities.RoleAdmin) {
			continue
		}
		if _, err := s.notificationRepo.Create(ctx, entities.Notification{
			UserID:  u.ID,
			Tipo:    entities.NotifStockBajo,
			Mensaje: mensaje,
		}); err != nil {
			s.logger.Warn("No se pudo crear la notificación de stock bajo",
				zap.Uint64("user_id", u.ID), zap.Error(err))
		}
	}
	return nil
}
