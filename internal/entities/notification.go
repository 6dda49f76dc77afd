package entities

import "time"

type NotificationType string

const (
	NotifTicketAsignado  NotificationType = "ticket_asignado"
	NotifTicketCerrado   NotificationType = "ticket_cerrado"
	NotifTicketComentado NotificationType = "ticket_actualizado"
	NotifStockBajo       NotificationType = "stock_bajo"
)

type Notification struct {
	ID        uint64           `json:"id"`
	UserID    uint64           `json:"user_id"`
	Tipo      NotificationType `json:"tipo"`
	Mensaje   string           `json:"mensaje"`
	TicketID  *uint64          `json:"ticket_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
