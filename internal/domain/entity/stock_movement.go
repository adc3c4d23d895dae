package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock generados por el libro de stock.
const (
	MovementTypeIN  = "IN"  // entrada (devolución)
	MovementTypeOUT = "OUT" // salida (aprobación de cotización)
)

// StockMovement registra un ajuste aplicado a un repuesto en una bodega.
// Quantity es positiva en entradas y negativa en salidas.
type StockMovement struct {
	ID            string
	TransactionID string
	PartID        string
	WarehouseID   string
	Type          string
	Quantity      int
	StockAfter    int
	UnitCost      decimal.Decimal
	Reference     string // cotización o entrega que originó el ajuste
	CreatedAt     time.Time
	CreatedBy     string
}
