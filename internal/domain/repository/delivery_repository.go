package repository

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
)

// DeliveryRepository define el puerto de persistencia para entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	// GetForUpdate bloquea la entrega dentro de la transacción. nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error)
	// FindActiveByQuote devuelve la entrega activa más reciente de la cotización (nil si no hay).
	FindActiveByQuote(ctx context.Context, quoteID int64) (*entity.Delivery, error)
	UpdateStatus(ctx context.Context, delivery *entity.Delivery) error
	List(ctx context.Context) ([]*entity.Delivery, error)
	Delete(ctx context.Context, id string) error
}
