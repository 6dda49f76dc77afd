package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// seedAdmin crea el usuario administrador inicial si no existe y devuelve su id.
// El correo y la contraseña pueden ajustarse con SEED_ADMIN_EMAIL y
// SEED_ADMIN_PASSWORD; cambie la contraseña tras el primer acceso.
func seedAdmin(ctx context.Context, db *pgxpool.Pool) (uint64, error) {
	log.Println("  - Creando el usuario administrador...")

	email := envOr("SEED_ADMIN_EMAIL", "admin@sistemas.gob.mx")
	password := envOr("SEED_ADMIN_PASSWORD", "Cambiame123!")

	var id uint64
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err == nil {
		log.Println("    - El administrador ya existe, se omite.")
		return id, nil
	}

	var departmentID uint64
	err = db.QueryRow(ctx, `SELECT id FROM departments WHERE nombre = 'Sistemas' LIMIT 1`).Scan(&departmentID)
	if err != nil {
		return 0, fmt.Errorf("no se encontró el departamento 'Sistemas': %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	err = db.QueryRow(ctx, `
		INSERT INTO users (nombre, email, password_hash, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id`,
		"Administrador del Sistema", email, string(hash), string(entities.RoleAdmin), departmentID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
