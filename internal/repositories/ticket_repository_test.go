package repositories

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain conecta con la BD de pruebas indicada en TEST_DATABASE_URL y aplica
// el esquema. Sin esa variable los tests de integración se omiten.
func TestMain(m *testing.M) {
	testDbURL := os.Getenv("TEST_DATABASE_URL")
	if testDbURL == "" {
		os.Exit(m.Run())
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), testDbURL)
	if err != nil {
		log.Fatalf("No se pudo conectar a la BD de pruebas: %v", err)
	}
	defer testPool.Close()

	applySchema(testPool)

	os.Exit(m.Run())
}

// applySchema ejecuta la sección Up de la migración inicial.
func applySchema(pool *pgxpool.Pool) {
	path, _ := filepath.Abs("../../migrations/00001_init.sql")
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("No se pudo leer la migración inicial: %v", err)
	}
	up, down, found := strings.Cut(string(raw), "-- +goose Down")
	if found {
		// Esquema limpio en cada corrida.
		if _, err := pool.Exec(context.Background(), down); err != nil {
			log.Fatalf("No se pudo limpiar el esquema: %v", err)
		}
	}
	if _, err := pool.Exec(context.Background(), up); err != nil {
		log.Fatalf("No se pudo aplicar el esquema: %v", err)
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL no está definida; se omiten los tests de integración")
	}
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE notifications, inventory_movements, insumos, deleted_tickets,
		               ticket_parts, tickets, equipment, user_permissions, permissions,
		               users, departments
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "No se pudieron limpiar las tablas")
}

func seedBase(t *testing.T, pool *pgxpool.Pool) (reporterID, tecnicoID uint64) {
	t.Helper()
	ctx := context.Background()

	var deptID uint64
	err := pool.QueryRow(ctx,
		`INSERT INTO departments (nombre, is_active) VALUES ('Sistemas', true) RETURNING id`,
	).Scan(&deptID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `
		INSERT INTO users (nombre, email, password_hash, role, department_id, is_active)
		VALUES ('Reportante de Prueba', 'reportante@test.local', 'x', 'usuario', $1, true)
		RETURNING id`, deptID).Scan(&reporterID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `
		INSERT INTO users (nombre, email, password_hash, role, department_id, is_active)
		VALUES ('Técnico de Prueba', 'tecnico@test.local', 'x', 'tecnico', $1, true)
		RETURNING id`, deptID).Scan(&tecnicoID)
	require.NoError(t, err)

	return reporterID, tecnicoID
}

func TestTicketRepository_Integration_CreateAndFind(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	reporterID, tecnicoID := seedBase(t, testPool)

	ctx := context.Background()
	repo := NewTicketRepository(testPool, zap.NewNop())
	txm := NewTxManager(testPool)

	ticket := entities.Ticket{
		Folio:        uuid.NewString(),
		Titulo:       "La impresora no enciende",
		Descripcion:  "No responde al botón de encendido",
		Status:       entities.StatusNuevo,
		Priority:     entities.PrioritySinClasificar,
		ServiceType:  entities.ServiceCorrectivo,
		ReporterID:   reporterID,
		AssignedToID: &tecnicoID,
	}

	var id uint64
	err := txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var errTx error
		id, errTx = repo.CreateTicketInTx(ctx, tx, ticket)
		if errTx != nil {
			return errTx
		}
		return repo.ReplacePartsInTx(ctx, tx, id, []entities.TicketPart{
			{Nombre: "Fuente de poder", Cantidad: 1},
		})
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindTicketByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ticket.Folio, found.Folio)
	assert.Equal(t, entities.StatusNuevo, found.Status)
	require.NotNil(t, found.AssignedToID)
	assert.Equal(t, tecnicoID, *found.AssignedToID)
	require.Len(t, found.Parts, 1)
	assert.Equal(t, "Fuente de poder", found.Parts[0].Nombre)
	assert.Equal(t, int64(1), found.Parts[0].Cantidad)
}

func TestTicketRepository_Integration_FindInexistente(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)

	repo := NewTicketRepository(testPool, zap.NewNop())
	_, err := repo.FindTicketByID(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTicketRepository_Integration_UpdateYReemplazoDePartes(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	reporterID, tecnicoID := seedBase(t, testPool)

	ctx := context.Background()
	repo := NewTicketRepository(testPool, zap.NewNop())
	txm := NewTxManager(testPool)

	var id uint64
	err := txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var errTx error
		id, errTx = repo.CreateTicketInTx(ctx, tx, entities.Ticket{
			Folio:       uuid.NewString(),
			Titulo:      "Equipo lento",
			Descripcion: "Tarda minutos en abrir aplicaciones",
			Status:      entities.StatusNuevo,
			Priority:    entities.PrioritySinClasificar,
			ServiceType: entities.ServicePreventivo,
			ReporterID:  reporterID,
		})
		return errTx
	})
	require.NoError(t, err)

	err = txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		actual, errTx := repo.FindTicketForUpdateInTx(ctx, tx, id)
		if errTx != nil {
			return errTx
		}
		actual.Status = entities.StatusEnProceso
		actual.AssignedToID = &tecnicoID
		if errTx := repo.UpdateTicketInTx(ctx, tx, *actual); errTx != nil {
			return errTx
		}
		return repo.ReplacePartsInTx(ctx, tx, id, []entities.TicketPart{
			{Nombre: "Memoria RAM DDR4 8GB", Cantidad: 2},
			{Nombre: "Disco SSD 480GB", Cantidad: 1},
		})
	})
	require.NoError(t, err)

	found, err := repo.FindTicketByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusEnProceso, found.Status)
	require.Len(t, found.Parts, 2)
	assert.Equal(t, "Memoria RAM DDR4 8GB", found.Parts[0].Nombre)
	assert.Equal(t, "Disco SSD 480GB", found.Parts[1].Nombre)
}

func TestTicketRepository_Integration_DeleteConLapida(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	reporterID, tecnicoID := seedBase(t, testPool)

	ctx := context.Background()
	repo := NewTicketRepository(testPool, zap.NewNop())
	tombstones := NewDeletedTicketRepository(testPool)
	txm := NewTxManager(testPool)

	var id uint64
	err := txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var errTx error
		id, errTx = repo.CreateTicketInTx(ctx, tx, entities.Ticket{
			Folio:       uuid.NewString(),
			Titulo:      "Ticket duplicado",
			Descripcion: "Creado dos veces por error",
			Status:      entities.StatusNuevo,
			Priority:    entities.PrioritySinClasificar,
			ServiceType: entities.ServiceCorrectivo,
			ReporterID:  reporterID,
		})
		return errTx
	})
	require.NoError(t, err)

	err = txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		original, errTx := repo.FindTicketForUpdateInTx(ctx, tx, id)
		if errTx != nil {
			return errTx
		}
		_, errTx = tombstones.InsertInTx(ctx, tx, entities.DeletedTicket{
			TicketID:      original.ID,
			Folio:         original.Folio,
			Titulo:        original.Titulo,
			Descripcion:   original.Descripcion,
			Status:        original.Status,
			Priority:      original.Priority,
			ServiceType:   original.ServiceType,
			ReporterID:    original.ReporterID,
			AssignedToID:  original.AssignedToID,
			EquipmentID:   original.EquipmentID,
			Justificacion: "Reporte duplicado",
			DeletedBy:     tecnicoID,
			DeletedAt:     time.Now(),
			CreadoEn:      original.CreatedAt,
		})
		if errTx != nil {
			return errTx
		}
		return repo.DeleteTicketInTx(ctx, tx, id)
	})
	require.NoError(t, err)

	_, err = repo.FindTicketByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	borrados, total, err := tombstones.GetDeletedTickets(ctx, types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, borrados, 1)
	assert.Equal(t, "Reporte duplicado", borrados[0].Justificacion)
}
