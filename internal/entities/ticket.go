package entities

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type TicketStatus string

const (
	StatusNuevo     TicketStatus = "nuevo"
	StatusPendiente TicketStatus = "pendiente"
	StatusEnProceso TicketStatus = "en_proceso"
	StatusCerrado   TicketStatus = "cerrado"
)

func (s TicketStatus) Valido() bool {
	switch s {
	case StatusNuevo, StatusPendiente, StatusEnProceso, StatusCerrado:
		return true
	}
	return false
}

type TicketPriority string

const (
	PrioritySinClasificar TicketPriority = "sin_clasificar"
	PriorityBaja          TicketPriority = "baja"
	PriorityMedia         TicketPriority = "media"
	PriorityAlta          TicketPriority = "alta"
	PriorityCritica       TicketPriority = "critica"
)

func (p TicketPriority) Valida() bool {
	switch p {
	case PrioritySinClasificar, PriorityBaja, PriorityMedia, PriorityAlta, PriorityCritica:
		return true
	}
	return false
}

type ServiceType string

const (
	ServicePreventivo  ServiceType = "preventivo"
	ServiceCorrectivo  ServiceType = "correctivo"
	ServiceInstalacion ServiceType = "instalacion"
)

func (t ServiceType) Valido() bool {
	switch t {
	case ServicePreventivo, ServiceCorrectivo, ServiceInstalacion:
		return true
	}
	return false
}

// TicketPart es una refacción usada en el ticket; la lista conserva el orden
// de captura.
type TicketPart struct {
	Nombre   string `json:"nombre"`
	Cantidad int64  `json:"cantidad"`
}

type Ticket struct {
	ID           uint64         `json:"id"`
	Folio        string         `json:"folio"`
	Titulo       string         `json:"titulo"`
	Descripcion  string         `json:"descripcion"`
	Status       TicketStatus   `json:"status"`
	Priority     TicketPriority `json:"priority"`
	ServiceType  ServiceType    `json:"service_type"`
	ReporterID   uint64         `json:"reporter_id"`
	AssignedToID *uint64        `json:"assigned_to_id,omitempty"`
	EquipmentID  *uint64        `json:"equipment_id,omitempty"`
	Diagnosis    *string        `json:"diagnosis,omitempty"`
	Solution     *string        `json:"solution,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	Parts        []TicketPart   `json:"parts"`
	AssignedAt   *time.Time     `json:"assigned_at,omitempty"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty"`

	types.BaseEntity
}

// DeletedTicket es la lápida de auditoría: la eliminación mueve el ticket aquí
// junto con la justificación obligatoria, nunca es un borrado duro sin rastro.
type DeletedTicket struct {
	ID            uint64         `json:"id"`
	TicketID      uint64         `json:"ticket_id"`
	Folio         string         `json:"folio"`
	Titulo        string         `json:"titulo"`
	Descripcion   string         `json:"descripcion"`
	Status        TicketStatus   `json:"status"`
	Priority      TicketPriority `json:"priority"`
	ServiceType   ServiceType    `json:"service_type"`
	ReporterID    uint64         `json:"reporter_id"`
	AssignedToID  *uint64        `json:"assigned_to_id,omitempty"`
	EquipmentID   *uint64        `json:"equipment_id,omitempty"`
	Justificacion string         `json:"justificacion"`
	DeletedBy     uint64         `json:"deleted_by"`
	DeletedAt     time.Time      `json:"deleted_at"`
	CreadoEn      time.Time      `json:"creado_en"`
}
