package ports

import (
	"context"
	"time"
)

// Releaser libera un candado obtenido con Locker.
type Releaser interface {
	Release(ctx context.Context) error
}

// Locker define el puerto de salida para candados por clave.
// Los adaptadores (Redis con redislock, local en memoria) deben devolver domain.ErrConflict
// cuando el candado sigue ocupado al vencer ttl.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Releaser, error)
}
