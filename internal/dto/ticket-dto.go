package dto

type TicketPartDTO struct {
	Nombre   string `json:"nombre" validate:"required,min=1,max=255"`
	Cantidad int64  `json:"cantidad" validate:"required,gt=0"`
}

type CreateTicketDTO struct {
	Titulo      string  `json:"titulo" validate:"required,min=5,max=255"`
	Descripcion string  `json:"descripcion" validate:"required,min=5"`
	ServiceType string  `json:"service_type" validate:"required,oneof=preventivo correctivo instalacion"`
	EquipmentID *uint64 `json:"equipment_id,omitempty" validate:"omitempty,gt=0"`

	// Solo un técnico o administrador clasifica al crear; para los demás roles
	// estos campos se ignoran y el servidor fija nuevo / sin_clasificar.
	Priority     *string `json:"priority,omitempty" validate:"omitempty,oneof=sin_clasificar baja media alta critica"`
	AssignedToID *uint64 `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateTicketDTO struct {
	Titulo       *string          `json:"titulo,omitempty" validate:"omitempty,min=5,max=255"`
	Descripcion  *string          `json:"descripcion,omitempty" validate:"omitempty,min=5"`
	Status       *string          `json:"status,omitempty" validate:"omitempty,oneof=nuevo pendiente en_proceso cerrado"`
	Priority     *string          `json:"priority,omitempty" validate:"omitempty,oneof=sin_clasificar baja media alta critica"`
	ServiceType  *string          `json:"service_type,omitempty" validate:"omitempty,oneof=preventivo correctivo instalacion"`
	AssignedToID *uint64          `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
	EquipmentID  *uint64          `json:"equipment_id,omitempty" validate:"omitempty,gt=0"`
	Diagnosis    *string          `json:"diagnosis,omitempty"`
	Solution     *string          `json:"solution,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Parts        *[]TicketPartDTO `json:"parts,omitempty" validate:"omitempty,dive"`
}

type DeleteTicketDTO struct {
	Justificacion string `json:"justificacion" validate:"required,min=5"`
}

type TicketDTO struct {
	ID           uint64          `json:"id"`
	Folio        string          `json:"folio"`
	Titulo       string          `json:"titulo"`
	Descripcion  string          `json:"descripcion"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	ServiceType  string          `json:"service_type"`
	Reporter     ShortUserDTO    `json:"reporter"`
	Tecnico      *ShortUserDTO   `json:"tecnico,omitempty"`
	EquipmentID  *uint64         `json:"equipment_id,omitempty"`
	Diagnosis    *string         `json:"diagnosis,omitempty"`
	Solution     *string         `json:"solution,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	Parts        []TicketPartDTO `json:"parts"`
	AssignedAt   *string         `json:"assigned_at,omitempty"`
	StartedAt    *string         `json:"started_at,omitempty"`
	ResolvedAt   *string         `json:"resolved_at,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type DeletedTicketDTO struct {
	ID            uint64 `json:"id"`
	TicketID      uint64 `json:"ticket_id"`
	Folio         string `json:"folio"`
	Titulo        string `json:"titulo"`
	Status        string `json:"status"`
	Justificacion string `json:"justificacion"`
	DeletedBy     uint64 `json:"deleted_by"`
	DeletedAt     string `json:"deleted_at"`
	CreadoEn      string `json:"creado_en"`
}
