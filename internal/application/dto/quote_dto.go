package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de una cotización. Para repuestos basta id, warehouseId y quantity
// (el precio por defecto es el del repuesto). Para servicios o artículos manuales se marca
// isService y se envían name, quantity y price.
type LineItemRequest struct {
	ID          string           `json:"id"`
	WarehouseID string           `json:"warehouseId"`
	Name        string           `json:"name" validate:"max=200"`
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	IsService   bool             `json:"isService"`
}

// QuoteRequest entrada para crear o editar una cotización.
type QuoteRequest struct {
	Client        string            `json:"client" validate:"max=200"`
	RIF           string            `json:"rif" validate:"max=50"`
	Phone         string            `json:"phone" validate:"max=50"`
	Address       string            `json:"address" validate:"max=300"`
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         []LineItemRequest `json:"items" validate:"dive"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=contado credito"`
	Currency      string            `json:"currency" validate:"omitempty,max=10"`
	SellerID      string            `json:"sellerId"`
}

// QuoteListQuery filtros del listado de cotizaciones.
type QuoteListQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=pendiente aprobada devuelta"`
	SellerID string `query:"sellerId"`
}

// LineItemResponse salida de una línea con su total recalculado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	PartNumber  string          `json:"partNumber"`
	Name        string          `json:"name"`
	WarehouseID string          `json:"warehouseId"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Total       decimal.Decimal `json:"total"`
	IsService   bool            `json:"isService"`
}

// QuoteResponse salida de una cotización. Total siempre se recalcula desde las líneas.
type QuoteResponse struct {
	ID            int64              `json:"id"`
	Client        string             `json:"client"`
	RIF           string             `json:"rif"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	Date          string             `json:"date"`
	Items         []LineItemResponse `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	Currency      string             `json:"currency"`
	SellerID      string             `json:"sellerId"`
	Status        string             `json:"status"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ApproveQuoteResponse resultado de aprobar: la cotización y la entrega creada.
type ApproveQuoteResponse struct {
	Quote    QuoteResponse    `json:"quote"`
	Delivery DeliveryResponse `json:"delivery"`
}

// ReturnQuoteResponse resultado de devolver al inventario una cotización aprobada.
type ReturnQuoteResponse struct {
	Quote    QuoteResponse    `json:"quote"`
	Delivery DeliveryResponse `json:"delivery"`
}
