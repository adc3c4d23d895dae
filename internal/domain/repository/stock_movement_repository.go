package repository

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error)
}
