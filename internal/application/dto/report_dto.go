package dto

import "github.com/shopspring/decimal"

// ReportQuery filtros comunes de los reportes.
type ReportQuery struct {
	StartDate   string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Client      string `query:"client" validate:"max=200"`
	WarehouseID string `query:"warehouseId"`
	Format      string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}

// WarehouseSaleRow línea vendida (no servicio) de una entrega.
type WarehouseSaleRow struct {
	DeliveryID    string          `json:"deliveryId"`
	QuoteID       int64           `json:"quoteId"`
	DeliveryDate  string          `json:"deliveryDate"`
	Client        string          `json:"client"`
	PartID        string          `json:"partId"`
	PartNumber    string          `json:"partNumber"`
	Name          string          `json:"name"`
	WarehouseID   string          `json:"warehouseId"`
	WarehouseName string          `json:"warehouseName"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	Currency      string          `json:"currency"`
}

// SalesByWarehouseReport detalle de ventas por bodega.
type SalesByWarehouseReport struct {
	WarehouseID string             `json:"warehouseId"`
	Items       []WarehouseSaleRow `json:"items"`
	ItemsSold   int                `json:"itemsSold"`
	TotalSales  decimal.Decimal    `json:"totalSales"`
}

// DetailedSaleItem línea de una entrega con su costo y ganancia.
type DetailedSaleItem struct {
	PartNumber string          `json:"partNumber"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Total      decimal.Decimal `json:"total"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	IsService  bool            `json:"isService"`
}

// DetailedSaleRow entrega con totales de venta, costo y ganancia.
type DetailedSaleRow struct {
	DeliveryID string             `json:"deliveryId"`
	QuoteID    int64              `json:"quoteId"`
	Client     string             `json:"client"`
	Date       string             `json:"date"`
	Currency   string             `json:"currency"`
	Items      []DetailedSaleItem `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	Cost       decimal.Decimal    `json:"cost"`
	Profit     decimal.Decimal    `json:"profit"`
}

// DetailedSalesReport ventas con ganancia y los totales del período.
type DetailedSalesReport struct {
	Deliveries  []DetailedSaleRow `json:"deliveries"`
	TotalSales  decimal.Decimal   `json:"totalSales"`
	TotalCost   decimal.Decimal   `json:"totalCost"`
	TotalProfit decimal.Decimal   `json:"totalProfit"`
}

// SellerSalesRow totales de un vendedor sobre cotizaciones aprobadas.
type SellerSalesRow struct {
	SellerID    string          `json:"sellerId"`
	Name        string          `json:"name"`
	QuotesCount int             `json:"quotesCount"`
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}
