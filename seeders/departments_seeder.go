package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando la tabla 'departments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO departments (nombre, is_active) VALUES ($1, true)
	          ON CONFLICT (nombre) DO NOTHING`

	for _, nombre := range departmentsData {
		if _, err := tx.Exec(ctx, query, nombre); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
