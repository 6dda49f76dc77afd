package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type MeDTO struct {
	ID           uint64  `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	Permissions  []string `json:"permissions"`
}
