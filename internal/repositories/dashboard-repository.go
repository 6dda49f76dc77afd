package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
)

type DashboardRepositoryInterface interface {
	GetCounters(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
}

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage}
}

// GetCounters arma los contadores del panel en una sola pasada por tabla
// con agregados condicionales.
func (r *DashboardRepository) GetCounters(ctx context.Context) (*dto.DashboardDTO, error) {
	var d dto.DashboardDTO

	err := r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'nuevo'),
			COUNT(*) FILTER (WHERE status = 'pendiente'),
			COUNT(*) FILTER (WHERE status = 'en_proceso'),
			COUNT(*) FILTER (WHERE status = 'cerrado')
		FROM tickets`,
	).Scan(&d.TicketsNuevos, &d.TicketsPendientes, &d.TicketsEnProceso, &d.TicketsCerrados)
	if err != nil {
		return nil, fmt.Errorf("error contando tickets para el panel: %w", err)
	}

	err = r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE estado = 'activo'),
			COUNT(*) FILTER (WHERE estado = 'en_reparacion')
		FROM equipment`,
	).Scan(&d.EquiposActivos, &d.EquiposReparacion)
	if err != nil {
		return nil, fmt.Errorf("error contando equipos para el panel: %w", err)
	}

	err = r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM insumos WHERE cantidad <= stock_minimo`,
	).Scan(&d.InsumosStockBajo)
	if err != nil {
		return nil, fmt.Errorf("error contando insumos para el panel: %w", err)
	}

	err = r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_active = true`,
	).Scan(&d.UsuariosActivos)
	if err != nil {
		return nil, fmt.Errorf("error contando usuarios para el panel: %w", err)
	}

	return &d, nil
}
