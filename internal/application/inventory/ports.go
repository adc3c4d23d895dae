package inventory

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Parts      repository.PartRepository
	Movements  repository.StockMovementRepository
	Quotes     repository.QuoteRepository
	Deliveries repository.DeliveryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
