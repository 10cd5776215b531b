package repository

import (
	"context"
	"time"
)

// CacheRepository guarda valores serializados por clave. Get devuelve ok=false sin
// error cuando la clave no existe.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
