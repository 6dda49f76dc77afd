package dto

type CreateDepartmentDTO struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=255"`
}

type UpdateDepartmentDTO struct {
	Nombre   *string `json:"nombre,omitempty" validate:"omitempty,min=2,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type DepartmentDTO struct {
	ID       uint64 `json:"id"`
	Nombre   string `json:"nombre"`
	IsActive bool   `json:"is_active"`
}
