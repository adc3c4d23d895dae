package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// lineItemRow forma de cada línea dentro de la columna JSONB items.
type lineItemRow struct {
	ID          string          `json:"id"`
	PartNumber  string          `json:"partNumber"`
	Name        string          `json:"name"`
	WarehouseID string          `json:"warehouseId"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	IsService   bool            `json:"isService,omitempty"`
}

func encodeItems(items []entity.LineItem) ([]byte, error) {
	rows := make([]lineItemRow, len(items))
	for i, it := range items {
		rows[i] = lineItemRow{
			ID:          it.ID,
			PartNumber:  it.PartNumber,
			Name:        it.Name,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Cost:        it.Cost,
			IsService:   it.IsService,
		}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return b, nil
}

func decodeItems(raw []byte) ([]entity.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []lineItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]entity.LineItem, len(rows))
	for i, r := range rows {
		items[i] = entity.LineItem{
			ID:          r.ID,
			PartNumber:  r.PartNumber,
			Name:        r.Name,
			WarehouseID: r.WarehouseID,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Cost:        r.Cost,
			IsService:   r.IsService,
		}
	}
	return items, nil
}
