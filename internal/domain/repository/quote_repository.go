package repository

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
)

// QuoteFilter filtros del listado de cotizaciones.
type QuoteFilter struct {
	Status   entity.QuoteStatus
	SellerID string
}

// QuoteRepository define el puerto de persistencia para cotizaciones.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id int64) (*entity.Quote, error)
	// GetForUpdate bloquea la cotización dentro de la transacción. nil, nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	List(ctx context.Context, filter QuoteFilter) ([]*entity.Quote, error)
	Delete(ctx context.Context, id int64) error
}
