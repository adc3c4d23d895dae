package repository

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
)

// PartFilter criterios de búsqueda del inventario.
type PartFilter struct {
	Search       string // número de parte, nombre, marca o modelo compatible
	WarehouseID  string
	LowStockOnly bool
}

// PartRepository define el puerto de persistencia para repuestos (DIP).
// Update no cambia Stock; la existencia solo se modifica con UpdateStock desde el libro de stock.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	// GetForUpdate busca el repuesto por (id, bodega) y bloquea la fila dentro de la transacción.
	// Devuelve nil, nil si no existe en esa bodega.
	GetForUpdate(ctx context.Context, id, warehouseID string) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	UpdateStock(ctx context.Context, id, warehouseID string, stock int) error
	List(ctx context.Context, filter PartFilter) ([]*entity.Part, error)
	Delete(ctx context.Context, id string) error
}
