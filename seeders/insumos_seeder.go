package seeders

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// seedInsumos da de alta los consumibles iniciales y registra el movimiento
// INITIAL correspondiente, igual que el alta vía API.
func seedInsumos(ctx context.Context, db *pgxpool.Pool, adminID uint64) error {
	log.Println("  - Poblando la tabla 'insumos'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range insumosData {
		var id uint64
		err := tx.QueryRow(ctx, `
			INSERT INTO insumos (nombre, cantidad, stock_minimo, unidad, ubicacion)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (lower(nombre)) DO NOTHING
			RETURNING id`,
			s.Nombre, s.Cantidad, s.StockMinimo, s.Unidad, s.Ubicacion,
		).Scan(&id)
		if err != nil {
			// Sin fila devuelta significa que el insumo ya existía.
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return err
		}
		if s.Cantidad > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO inventory_movements (insumo_id, tipo, cantidad, ticket_id, usuario_id, referencia)
				VALUES ($1, $2, $3, NULL, $4, $5)`,
				id, string(entities.MovementInitial), s.Cantidad, adminID, "Existencia inicial")
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
