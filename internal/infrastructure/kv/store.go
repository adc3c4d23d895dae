package kv

import (
	"context"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/ports"
)

// Store almacenamiento clave-valor con valores JSON. Lo usan clientes, vendedores,
// usuarios y el contador de documentos.
type Store interface {
	// Get decodifica el valor en dest. found es false si la clave no existe.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	// CreateIfAbsent guarda value solo si la clave no existe; devuelve true si lo creó.
	CreateIfAbsent(ctx context.Context, key string, value any) (bool, error)
	// Incr incrementa el entero guardado en key (0 si no existe) y devuelve el nuevo valor.
	Incr(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}

// Releaser y Locker son los puertos de candados; los adaptadores de este paquete los implementan.
type (
	Releaser = ports.Releaser
	Locker   = ports.Locker
)

// Claves usadas en el almacenamiento.
const (
	KeyClients = "clients"
	KeySellers = "sellers"
	KeyUsers   = "users"
)

// DefaultLockTTL duración máxima de un candado si el proceso muere sin liberarlo.
const DefaultLockTTL = 15 * time.Second
