package memory

import (
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultWarehouses bodegas fijas del negocio.
func DefaultWarehouses() []*entity.Warehouse {
	return []*entity.Warehouse{
		{ID: "1", Name: "Almacén Principal"},
		{ID: "2", Name: "Almacén Secundario"},
	}
}

// DemoParts inventario inicial usado cuando el almacenamiento corre en memoria.
func DemoParts(now time.Time) []*entity.Part {
	part := func(id, number, name, brand, model, wh, loc string, price, cost float64, stock, min int, models ...string) *entity.Part {
		return &entity.Part{
			ID:               id,
			PartNumber:       number,
			Name:             name,
			Brand:            brand,
			Model:            model,
			CompatibleModels: models,
			Price:            decimal.NewFromFloat(price),
			Cost:             decimal.NewFromFloat(cost),
			Stock:            stock,
			MinStock:         min,
			Location:         loc,
			WarehouseID:      wh,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}
	return []*entity.Part{
		part("1", "ABC-123", "Filtro de Aceite", "Mann-Filter", "W950/1", "1", "A1", 25.50, 15, 100, 20, "Volvo FH", "Scania R"),
		part("2", "XYZ-456", "Pastillas de Freno", "Textar", "TMD234", "1", "B2", 120, 70, 50, 10, "Mercedes-Benz Actros", "DAF XF"),
		part("3", "DEF-789", "Amortiguador Delantero", "Sachs", "170 888", "2", "C3", 300, 180, 30, 5, "Volvo FH", "Renault T"),
		part("4", "GHI-012", "Batería 12V", "Varta", "Blue Dynamic", "2", "D4", 150, 90, 80, 15, "Universal"),
		part("5", "JKL-345", "Correa de Distribución", "ContiTech", "CT1028", "1", "E5", 80, 45, 60, 10, "Scania R", "DAF XF"),
	}
}

// SeedParts carga repuestos sin pasar por el libro de stock.
func (s *Store) SeedParts(list ...*entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range list {
		s.data.parts[p.ID] = p.Clone()
	}
}
