package entities

import (
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

type Department struct {
	ID       uint64 `json:"id"`
	Nombre   string `json:"nombre"`
	IsActive bool   `json:"is_active"`

	types.BaseEntity
}
