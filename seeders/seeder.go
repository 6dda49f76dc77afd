package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore puebla los catálogos sin dependencias: permisos y departamentos.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Poblando catálogos base...")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("❌ Error poblando permisos: %v", err)
	}
	if err := seedDepartments(ctx, db); err != nil {
		log.Fatalf("❌ Error poblando departamentos: %v", err)
	}
	log.Println("✅ Catálogos base listos.")
}

// SeedAdminAndStock crea el administrador inicial y el inventario de arranque.
// Requiere que SeedCore haya corrido antes (el admin vive en 'Sistemas').
func SeedAdminAndStock(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Creando administrador e inventario inicial...")

	adminID, err := seedAdmin(ctx, db)
	if err != nil {
		log.Fatalf("❌ Error creando el administrador: %v", err)
	}
	if err := seedInsumos(ctx, db, adminID); err != nil {
		log.Fatalf("❌ Error poblando insumos: %v", err)
	}
	log.Println("✅ Administrador e inventario listos.")
}
