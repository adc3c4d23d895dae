package kv

import (
	"context"
	"fmt"

	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.DocumentCounter = (*DocumentCounter)(nil)

// DocumentCounter números de documento sobre el almacenamiento clave-valor.
// El contador arranca en Start; el primer número entregado es Start+1.
type DocumentCounter struct {
	store Store
	start int64
}

// NewDocumentCounter construye el contador. Con start 999 la primera cotización es la 1000.
func NewDocumentCounter(store Store, start int64) *DocumentCounter {
	return &DocumentCounter{store: store, start: start}
}

// Next crea el contador si no existe y devuelve el siguiente número.
func (c *DocumentCounter) Next(ctx context.Context, name string) (int64, error) {
	if _, err := c.store.CreateIfAbsent(ctx, name, c.start); err != nil {
		return 0, fmt.Errorf("iniciar contador %s: %w", name, err)
	}
	n, err := c.store.Incr(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("siguiente número %s: %w", name, err)
	}
	return n, nil
}
