package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// movementWindow cantidad de movimientos recientes que se revisan por repuesto.
const movementWindow = 200

// ReplenishmentUseCase lista los repuestos en o bajo su stock mínimo con la cantidad sugerida
// de pedido, priorizando los de mayor déficit y más vendidos.
type ReplenishmentUseCase struct {
	parts     repository.PartRepository
	movements repository.StockMovementRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(parts repository.PartRepository, movements repository.StockMovementRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{parts: parts, movements: movements}
}

// LowStock devuelve las sugerencias de reposición; warehouseID vacío considera todas las bodegas.
// La cantidad sugerida lleva la existencia al doble del mínimo.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	parts, err := uc.parts.List(ctx, repository.PartFilter{WarehouseID: warehouseID, LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(parts))
	for _, p := range parts {
		sold, err := uc.unitsSold(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		qty := p.MinStock*2 - p.Stock
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			PartID:             p.ID,
			PartNumber:         p.PartNumber,
			Name:               p.Name,
			WarehouseID:        p.WarehouseID,
			Stock:              p.Stock,
			MinStock:           p.MinStock,
			SuggestedQuantity:  qty,
			UnitCost:           p.Cost,
			EstimatedOrderCost: p.Cost.Mul(decimal.NewFromInt(int64(qty))),
			UnitsSold:          sold,
		})
	}

	// Primero mayor déficit bajo el mínimo, luego mayor volumen vendido
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA, defB := a.MinStock-a.Stock, b.MinStock-b.Stock
		if defA != defB {
			return defA > defB
		}
		return a.UnitsSold > b.UnitsSold
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// unitsSold suma las salidas recientes netas de devoluciones.
func (uc *ReplenishmentUseCase) unitsSold(ctx context.Context, partID string) (int, error) {
	movs, err := uc.movements.ListByPart(ctx, partID, movementWindow, 0)
	if err != nil {
		return 0, err
	}
	sold := 0
	for _, m := range movs {
		if m.Type == entity.MovementTypeOUT && strings.HasPrefix(m.Reference, salePrefix) ||
			m.Type == entity.MovementTypeIN && strings.HasPrefix(m.Reference, returnPrefix) {
			sold -= m.Quantity
		}
	}
	if sold < 0 {
		sold = 0
	}
	return sold, nil
}
