package dto

type CreateUserDTO struct {
	Nombre       string  `json:"nombre" validate:"required,min=3,max=255"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	Role         string  `json:"role" validate:"required,rol_sistema"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserDTO struct {
	Nombre       *string `json:"nombre,omitempty" validate:"omitempty,min=3,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role         *string `json:"role,omitempty" validate:"omitempty,rol_sistema"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type UserDTO struct {
	ID           uint64  `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	Departamento *string `json:"departamento,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

type ShortUserDTO struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
}
