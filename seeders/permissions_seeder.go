package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// seedPermissions inserta el catálogo completo módulo × acción. El catálogo es
// cerrado: el evaluador sólo reconoce pares que existan en esta tabla.
func seedPermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando la tabla 'permissions'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO permissions (module, action) VALUES ($1, $2)
	          ON CONFLICT (module, action) DO NOTHING`

	for _, m := range entities.Modules {
		for _, a := range entities.Actions {
			if _, err := tx.Exec(ctx, query, string(m), string(a)); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
