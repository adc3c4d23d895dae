package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// DocumentLine línea impresa del documento.
type DocumentLine struct {
	PartNumber string
	Name       string
	Warehouse  string
	Quantity   int
	Price      decimal.Decimal
	Total      decimal.Decimal
}

// DocumentData datos ya resueltos para imprimir una cotización o una nota de entrega.
type DocumentData struct {
	Title          string // "COTIZACIÓN" o "NOTA DE ENTREGA"
	Number         string
	Date           string
	Status         string
	Client         string
	RIF            string
	Phone          string
	Address        string
	SellerName     string
	PaymentMethod  string
	CurrencySymbol string
	Lines          []DocumentLine
	Total          decimal.Decimal
}

// PDFGenerator define el puerto de salida para generar documentos PDF.
type PDFGenerator interface {
	Generate(ctx context.Context, data DocumentData) ([]byte, error)
}
