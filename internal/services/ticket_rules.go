package services

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

// transicionesPermitidas define el grafo del ciclo de vida. cerrado es
// terminal: un ticket cerrado no se reabre, se levanta uno nuevo.
var transicionesPermitidas = map[entities.TicketStatus][]entities.TicketStatus{
	entities.StatusNuevo:     {entities.StatusPendiente, entities.StatusEnProceso},
	entities.StatusPendiente: {entities.StatusEnProceso, entities.StatusCerrado},
	entities.StatusEnProceso: {entities.StatusPendiente, entities.StatusCerrado},
	entities.StatusCerrado:   {},
}

// ValidarTransicion acepta quedarse en el mismo estado; para un cambio real
// consulta el grafo.
func ValidarTransicion(actual, destino entities.TicketStatus) error {
	if actual == destino {
		return nil
	}
	if actual == entities.StatusCerrado {
		return apperrors.ErrTicketCerrado
	}
	for _, permitido := range transicionesPermitidas[actual] {
		if destino == permitido {
			return nil
		}
	}
	return apperrors.ErrTransicionInvalida
}

// EstamparTiempos fija las marcas de hito del ticket. Cada marca se escribe
// una sola vez: reasignar o volver a en_proceso no la mueve.
func EstamparTiempos(t *entities.Ticket, now time.Time) {
	if t.AssignedToID != nil && t.AssignedAt == nil {
		t.AssignedAt = &now
	}
	if t.Status == entities.StatusEnProceso && t.StartedAt == nil {
		t.StartedAt = &now
	}
	if t.Status == entities.StatusCerrado && t.ResolvedAt == nil {
		t.ResolvedAt = &now
	}
}

// CalcularDeltaRefacciones compara la lista previa y la nueva de refacciones
// y devuelve, por nombre de insumo, cuántas unidades adicionales se
// consumieron (positivo) o se devolvieron (negativo).
func CalcularDeltaRefacciones(antes, despues []entities.TicketPart) map[string]int64 {
	delta := make(map[string]int64)
	for _, p := range despues {
		delta[p.Nombre] += p.Cantidad
	}
	for _, p := range antes {
		delta[p.Nombre] -= p.Cantidad
	}
	for nombre, d := range delta {
		if d == 0 {
			delete(delta, nombre)
		}
	}
	return delta
}
