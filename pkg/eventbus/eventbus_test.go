package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type eventoPrueba struct{ nombre string }

func (e eventoPrueba) Name() string { return e.nombre }

func TestBus_PublishEntregaATodos(t *testing.T) {
	bus := New(zap.NewNop())

	var mu sync.Mutex
	var recibidos []string
	var wg sync.WaitGroup
	wg.Add(2)

	for _, id := range []string{"a", "b"} {
		id := id
		bus.Subscribe("ticket.cerrado", func(ctx context.Context, ev Event) error {
			defer wg.Done()
			mu.Lock()
			recibidos = append(recibidos, id+":"+ev.Name())
			mu.Unlock()
			return nil
		})
	}

	bus.Publish(context.Background(), eventoPrueba{nombre: "ticket.cerrado"})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, recibidos, 2)
	assert.Contains(t, recibidos, "a:ticket.cerrado")
	assert.Contains(t, recibidos, "b:ticket.cerrado")
}

func TestBus_PublishSinSuscriptoresNoBloquea(t *testing.T) {
	bus := New(zap.NewNop())

	done := make(chan struct{})
	go func() {
		bus.Publish(context.Background(), eventoPrueba{nombre: "sin.oyentes"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish se quedó bloqueado sin suscriptores")
	}
}

func TestBus_ErrorDeListenerNoAfectaAlResto(t *testing.T) {
	bus := New(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	var sanoEjecutado bool
	var mu sync.Mutex

	bus.Subscribe("insumo.stock_bajo", func(ctx context.Context, ev Event) error {
		defer wg.Done()
		return errors.New("falla simulada")
	})
	bus.Subscribe("insumo.stock_bajo", func(ctx context.Context, ev Event) error {
		defer wg.Done()
		mu.Lock()
		sanoEjecutado = true
		mu.Unlock()
		return nil
	})

	bus.Publish(context.Background(), eventoPrueba{nombre: "insumo.stock_bajo"})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, sanoEjecutado)
}
