package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

func seedInsumo(t *testing.T, nombre string, cantidad int64) uint64 {
	t.Helper()
	var id uint64
	err := testPool.QueryRow(context.Background(), `
		INSERT INTO insumos (nombre, cantidad, stock_minimo, unidad, ubicacion)
		VALUES ($1, $2, 2, 'pieza', 'Almacén A')
		RETURNING id`, nombre, cantidad).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestInsumoRepository_Integration_MovimientoDeSalida(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	_, tecnicoID := seedBase(t, testPool)
	insumoID := seedInsumo(t, "Tóner HP 85A", 10)

	ctx := context.Background()
	insumos := NewInsumoRepository(testPool, zap.NewNop())
	movimientos := NewMovementRepository(testPool)
	txm := NewTxManager(testPool)

	err := txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		bloqueado, errTx := insumos.FindForUpdateInTx(ctx, tx, insumoID)
		if errTx != nil {
			return errTx
		}

		salida := entities.InventoryMovement{
			InsumoID:   insumoID,
			Tipo:       entities.MovementManual,
			Cantidad:   -3,
			UsuarioID:  tecnicoID,
			Referencia: "Entrega a mesa de ayuda",
		}
		if _, errTx := movimientos.CreateMovementInTx(ctx, tx, salida); errTx != nil {
			return errTx
		}
		return insumos.ApplyMovementInTx(ctx, tx, insumoID, bloqueado.Cantidad-3, &salida)
	})
	require.NoError(t, err)

	actual, err := insumos.FindInsumoByID(ctx, insumoID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), actual.Cantidad)
	require.NotNil(t, actual.LastExit)
	require.NotNil(t, actual.LastExitQuantity)
	assert.Equal(t, int64(3), *actual.LastExitQuantity)

	kardex, total, err := movimientos.GetMovementsByInsumo(ctx, insumoID, types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, kardex, 1)
	assert.Equal(t, int64(-3), kardex[0].Cantidad)
}

func TestInsumoRepository_Integration_BusquedaPorNombreSinDistinguirMayusculas(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seedBase(t, testPool)
	insumoID := seedInsumo(t, "Pasta térmica", 5)

	ctx := context.Background()
	insumos := NewInsumoRepository(testPool, zap.NewNop())
	txm := NewTxManager(testPool)

	err := txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		encontrado, errTx := insumos.FindByNombreForUpdateInTx(ctx, tx, "PASTA TÉRMICA")
		if errTx != nil {
			return errTx
		}
		assert.Equal(t, insumoID, encontrado.ID)
		return nil
	})
	require.NoError(t, err)
}
