package entity

import "github.com/shopspring/decimal"

// Valores usados en los ítems manuales (servicios o artículos sin inventario).
const (
	ManualItemPrefix = "manual-"
	NotApplicable    = "N/A"
)

// LineItem es una línea de cotización o entrega. Si IsService es true la línea no
// referencia inventario y el libro de stock la ignora.
type LineItem struct {
	ID          string
	PartNumber  string
	Name        string
	WarehouseID string
	Quantity    int
	Price       decimal.Decimal
	Cost        decimal.Decimal
	IsService   bool
}

// Total devuelve cantidad × precio unitario.
func (i LineItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CostTotal devuelve cantidad × costo unitario. Los servicios no tienen costo.
func (i LineItem) CostTotal() decimal.Decimal {
	if i.IsService {
		return decimal.Zero
	}
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumItems recalcula el total de un documento a partir de sus líneas.
func SumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

// SumItemsCost recalcula el costo de un documento a partir de sus líneas.
func SumItemsCost(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.CostTotal())
	}
	return total
}

// CloneItems copia las líneas para que el snapshot no comparta memoria con el origen.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
