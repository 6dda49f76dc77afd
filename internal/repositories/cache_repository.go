package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface cubre lo que la capa de auth necesita de Redis:
// contadores de intentos de login y almacenamiento de refresh tokens. Los
// permisos NO pasan por aquí: su vigencia depende del instante de evaluación
// y se leen siempre frescos de Postgres.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}
