package dto

type NotificationDTO struct {
	ID        uint64  `json:"id"`
	Tipo      string  `json:"tipo"`
	Mensaje   string  `json:"mensaje"`
	TicketID  *uint64 `json:"ticket_id,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}
