package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del inventario. Cada registro pertenece a una bodega;
// el par (ID, WarehouseID) identifica la existencia que ajusta el libro de stock.
type Part struct {
	ID               string
	PartNumber       string
	Name             string
	Brand            string
	Model            string
	CompatibleModels []string
	Price            decimal.Decimal // precio de venta
	Cost             decimal.Decimal // costo de compra
	Stock            int
	MinStock         int
	Location         string // ubicación física dentro de la bodega
	WarehouseID      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si la existencia llegó al mínimo configurado.
func (p *Part) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Clone devuelve una copia independiente (incluye el slice de modelos compatibles).
func (p *Part) Clone() *Part {
	if p == nil {
		return nil
	}
	c := *p
	c.CompatibleModels = append([]string(nil), p.CompatibleModels...)
	return &c
}
