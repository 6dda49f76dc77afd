package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

func TestValidarTransicion(t *testing.T) {
	casos := []struct {
		nombre  string
		actual  entities.TicketStatus
		destino entities.TicketStatus
		errEsp  error
	}{
		{"nuevo a pendiente", entities.StatusNuevo, entities.StatusPendiente, nil},
		{"nuevo a en_proceso", entities.StatusNuevo, entities.StatusEnProceso, nil},
		{"nuevo a cerrado directo se rechaza", entities.StatusNuevo, entities.StatusCerrado, apperrors.ErrTransicionInvalida},
		{"pendiente a en_proceso", entities.StatusPendiente, entities.StatusEnProceso, nil},
		{"pendiente a cerrado", entities.StatusPendiente, entities.StatusCerrado, nil},
		{"pendiente no regresa a nuevo", entities.StatusPendiente, entities.StatusNuevo, apperrors.ErrTransicionInvalida},
		{"en_proceso regresa a pendiente", entities.StatusEnProceso, entities.StatusPendiente, nil},
		{"en_proceso a cerrado", entities.StatusEnProceso, entities.StatusCerrado, nil},
		{"en_proceso no regresa a nuevo", entities.StatusEnProceso, entities.StatusNuevo, apperrors.ErrTransicionInvalida},
		{"cerrado es terminal", entities.StatusCerrado, entities.StatusEnProceso, apperrors.ErrTicketCerrado},
		{"cerrado no se reabre a pendiente", entities.StatusCerrado, entities.StatusPendiente, apperrors.ErrTicketCerrado},
		{"mismo estado siempre pasa", entities.StatusEnProceso, entities.StatusEnProceso, nil},
		{"cerrado a cerrado pasa", entities.StatusCerrado, entities.StatusCerrado, nil},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := ValidarTransicion(c.actual, c.destino)
			if c.errEsp == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.errEsp)
			}
		})
	}
}

func TestEstamparTiempos(t *testing.T) {
	ahora := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	despues := ahora.Add(2 * time.Hour)
	tecnicoID := uint64(7)

	t.Run("asignación fija assigned_at una sola vez", func(t *testing.T) {
		tk := entities.Ticket{Status: entities.StatusPendiente, AssignedToID: &tecnicoID}
		EstamparTiempos(&tk, ahora)
		require.NotNil(t, tk.AssignedAt)
		assert.Equal(t, ahora, *tk.AssignedAt)

		otro := uint64(9)
		tk.AssignedToID = &otro
		EstamparTiempos(&tk, despues)
		assert.Equal(t, ahora, *tk.AssignedAt, "reasignar no mueve la marca")
	})

	t.Run("en_proceso fija started_at y no se mueve al reentrar", func(t *testing.T) {
		tk := entities.Ticket{Status: entities.StatusEnProceso}
		EstamparTiempos(&tk, ahora)
		require.NotNil(t, tk.StartedAt)

		tk.Status = entities.StatusPendiente
		EstamparTiempos(&tk, despues)
		tk.Status = entities.StatusEnProceso
		EstamparTiempos(&tk, despues)
		assert.Equal(t, ahora, *tk.StartedAt)
	})

	t.Run("cerrado fija resolved_at", func(t *testing.T) {
		tk := entities.Ticket{Status: entities.StatusCerrado}
		EstamparTiempos(&tk, ahora)
		require.NotNil(t, tk.ResolvedAt)
		assert.Equal(t, ahora, *tk.ResolvedAt)
	})

	t.Run("sin asignación ni hito no estampa nada", func(t *testing.T) {
		tk := entities.Ticket{Status: entities.StatusNuevo}
		EstamparTiempos(&tk, ahora)
		assert.Nil(t, tk.AssignedAt)
		assert.Nil(t, tk.StartedAt)
		assert.Nil(t, tk.ResolvedAt)
	})
}

func TestCalcularDeltaRefacciones(t *testing.T) {
	t.Run("alta de refacciones nuevas", func(t *testing.T) {
		delta := CalcularDeltaRefacciones(nil, []entities.TicketPart{
			{Nombre: "Disco SSD 480GB", Cantidad: 1},
			{Nombre: "Pasta térmica", Cantidad: 2},
		})
		assert.Equal(t, map[string]int64{"Disco SSD 480GB": 1, "Pasta térmica": 2}, delta)
	})

	t.Run("incremento parcial", func(t *testing.T) {
		antes := []entities.TicketPart{{Nombre: "Pasta térmica", Cantidad: 1}}
		despues := []entities.TicketPart{{Nombre: "Pasta térmica", Cantidad: 3}}
		assert.Equal(t, map[string]int64{"Pasta térmica": 2}, CalcularDeltaRefacciones(antes, despues))
	})

	t.Run("devolución produce delta negativo", func(t *testing.T) {
		antes := []entities.TicketPart{{Nombre: "Memoria RAM 8GB", Cantidad: 2}}
		despues := []entities.TicketPart{{Nombre: "Memoria RAM 8GB", Cantidad: 1}}
		assert.Equal(t, map[string]int64{"Memoria RAM 8GB": -1}, CalcularDeltaRefacciones(antes, despues))
	})

	t.Run("sin cambios no produce entradas", func(t *testing.T) {
		partes := []entities.TicketPart{{Nombre: "Cable HDMI", Cantidad: 1}}
		assert.Empty(t, CalcularDeltaRefacciones(partes, partes))
	})

	t.Run("nombre repetido en la lista se acumula", func(t *testing.T) {
		despues := []entities.TicketPart{
			{Nombre: "Tornillo M3", Cantidad: 4},
			{Nombre: "Tornillo M3", Cantidad: 2},
		}
		assert.Equal(t, map[string]int64{"Tornillo M3": 6}, CalcularDeltaRefacciones(nil, despues))
	})

	t.Run("refacción retirada por completo", func(t *testing.T) {
		antes := []entities.TicketPart{{Nombre: "Fuente 600W", Cantidad: 1}}
		assert.Equal(t, map[string]int64{"Fuente 600W": -1}, CalcularDeltaRefacciones(antes, nil))
	})
}
