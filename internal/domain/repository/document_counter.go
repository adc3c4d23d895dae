package repository

import "context"

// Nombres de los contadores de documentos.
const (
	CounterQuote = "lastQuoteNumber"
)

// DocumentCounter entrega números de documento crecientes y persistidos.
type DocumentCounter interface {
	Next(ctx context.Context, name string) (int64, error)
}
