package main

import (
	"flag"
	"log"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/config"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/database/postgresql"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 SEEDERS (carga inicial de la BD)            ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Poblar catálogos base (permisos, departamentos)")
	runAdmin := flag.Bool("admin", false, "Crear el administrador inicial y el inventario de arranque")
	runAll := flag.Bool("all", false, "Ejecutar todos los seeders (equivale a -core -admin)")

	flag.Parse()

	if !*runCore && !*runAdmin && !*runAll {
		log.Println("❌ No se seleccionó ningún seeder.")
		log.Println("")
		log.Println("Banderas disponibles:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Ejemplos:")
		log.Println("  go run ./seeders/cmd/seed -core")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ No se pudo conectar a la BD: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCore(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		// El administrador depende de los catálogos base.
		seeders.SeedAdminAndStock(dbPool)
		log.Println("======================================================")
	}

	log.Println("🏁 Seeders finalizados.")
}
