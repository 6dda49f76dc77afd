package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event es cualquier suceso del sistema que pueda interesar a un suscriptor.
type Event interface {
	Name() string
}

// Listener es un manejador de eventos.
type Listener func(ctx context.Context, event Event) error

// Bus es la mensajería interna en memoria del proceso.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe registra un listener para un evento concreto.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish entrega el evento a todos los suscriptores en goroutinas propias.
// Cada listener corre con un contexto acotado para no dejar goroutines
// colgadas; sus errores se registran, no tumban al publicador.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	if listeners, ok := b.listeners[eventName]; ok {
		for _, listener := range listeners {
			go func(l Listener) {
				ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
				defer cancel()

				if err := l(ctxWithTimeout, event); err != nil {
					b.logger.Error("Error en el manejador del evento",
						zap.String("event", eventName),
						zap.Error(err),
					)
				}
			}(listener)
		}
	}
}
