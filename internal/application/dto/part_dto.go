package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para crear un repuesto.
type CreatePartRequest struct {
	PartNumber       string          `json:"partNumber" validate:"required,min=1,max=100"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Brand            string          `json:"brand" validate:"max=100"`
	Model            string          `json:"model" validate:"max=100"`
	CompatibleModels []string        `json:"compatibleModels" validate:"dive,min=1,max=100"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	Stock            int             `json:"stock" validate:"min=0"`
	MinStock         int             `json:"minStock" validate:"min=0"`
	Location         string          `json:"location" validate:"max=100"`
	WarehouseID      string          `json:"warehouseId" validate:"required"`
}

// UpdatePartRequest entrada para editar un repuesto. Stock permite corregir la existencia
// desde la gestión de inventario; las ventas la ajustan solo mediante el libro de stock.
type UpdatePartRequest struct {
	PartNumber       *string          `json:"partNumber" validate:"omitempty,min=1,max=100"`
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand            *string          `json:"brand" validate:"omitempty,max=100"`
	Model            *string          `json:"model" validate:"omitempty,max=100"`
	CompatibleModels []string         `json:"compatibleModels" validate:"omitempty,dive,min=1,max=100"`
	Price            *decimal.Decimal `json:"price"`
	Cost             *decimal.Decimal `json:"cost"`
	Stock            *int             `json:"stock" validate:"omitempty,min=0"`
	MinStock         *int             `json:"minStock" validate:"omitempty,min=0"`
	Location         *string          `json:"location" validate:"omitempty,max=100"`
	WarehouseID      *string          `json:"warehouseId" validate:"omitempty,min=1"`
}

// PartListQuery filtros del listado de inventario.
type PartListQuery struct {
	Search      string `query:"search"`
	WarehouseID string `query:"warehouseId"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID               string          `json:"id"`
	PartNumber       string          `json:"partNumber"`
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	CompatibleModels []string        `json:"compatibleModels"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	Stock            int             `json:"stock"`
	MinStock         int             `json:"minStock"`
	LowStock         bool            `json:"lowStock"`
	Location         string          `json:"location"`
	WarehouseID      string          `json:"warehouseId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// StockMovementResponse salida de un movimiento del libro de stock.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	PartID        string          `json:"partId"`
	WarehouseID   string          `json:"warehouseId"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	StockAfter    int             `json:"stockAfter"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy,omitempty"`
}

// MovementListResponse lista paginada de movimientos de un repuesto.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReplenishmentSuggestionDTO repuesto en o bajo el mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	PartID             string          `json:"partId"`
	PartNumber         string          `json:"partNumber"`
	Name               string          `json:"name"`
	WarehouseID        string          `json:"warehouseId"`
	Stock              int             `json:"stock"`
	MinStock           int             `json:"minStock"`
	SuggestedQuantity  int             `json:"suggestedQuantity"`
	UnitCost           decimal.Decimal `json:"unitCost"`
	EstimatedOrderCost decimal.Decimal `json:"estimatedOrderCost"`
	UnitsSold          int             `json:"unitsSold"`
	Priority           int             `json:"priority"`
}
