package dto

type PermissionDTO struct {
	ID     uint64 `json:"id"`
	Module string `json:"module"`
	Action string `json:"action"`
}

type GrantPermissionDTO struct {
	Module    string  `json:"module" validate:"required"`
	Action    string  `json:"action" validate:"required"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

type UserPermissionDTO struct {
	ID        uint64  `json:"id"`
	Module    string  `json:"module"`
	Action    string  `json:"action"`
	GrantedBy uint64  `json:"granted_by"`
	GrantedAt string  `json:"granted_at"`
	ExpiresAt *string `json:"expires_at,omitempty"`
	IsActive  bool    `json:"is_active"`
}
