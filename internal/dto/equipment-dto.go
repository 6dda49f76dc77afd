package dto

type CreateEquipmentDTO struct {
	Tipo           string  `json:"tipo" validate:"required,min=2,max=100"`
	Marca          string  `json:"marca" validate:"omitempty,max=100"`
	Modelo         string  `json:"modelo" validate:"omitempty,max=100"`
	NumeroSerie    string  `json:"numero_serie" validate:"required,min=2,max=100"`
	Estado         string  `json:"estado" validate:"required,oneof=activo en_reparacion baja almacenado"`
	AssignedUserID *uint64 `json:"assigned_user_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID   *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	Specs          *string `json:"specs,omitempty"`
}

type UpdateEquipmentDTO struct {
	Tipo           *string `json:"tipo,omitempty" validate:"omitempty,min=2,max=100"`
	Marca          *string `json:"marca,omitempty" validate:"omitempty,max=100"`
	Modelo         *string `json:"modelo,omitempty" validate:"omitempty,max=100"`
	NumeroSerie    *string `json:"numero_serie,omitempty" validate:"omitempty,min=2,max=100"`
	Estado         *string `json:"estado,omitempty" validate:"omitempty,oneof=activo en_reparacion baja almacenado"`
	AssignedUserID *uint64 `json:"assigned_user_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID   *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	Specs          *string `json:"specs,omitempty"`
}

type EquipmentDTO struct {
	ID             uint64  `json:"id"`
	Tipo           string  `json:"tipo"`
	Marca          string  `json:"marca"`
	Modelo         string  `json:"modelo"`
	NumeroSerie    string  `json:"numero_serie"`
	Estado         string  `json:"estado"`
	AssignedUserID *uint64 `json:"assigned_user_id,omitempty"`
	AsignadoA      *string `json:"asignado_a,omitempty"`
	DepartmentID   *uint64 `json:"department_id,omitempty"`
	Departamento   *string `json:"departamento,omitempty"`
	Specs          *string `json:"specs,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
