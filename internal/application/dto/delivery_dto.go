package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryResponse salida de una nota de entrega.
type DeliveryResponse struct {
	ID            string             `json:"id"`
	QuoteID       int64              `json:"quoteId"`
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
	ApprovedAt    time.Time          `json:"approvedAt"`
	ReturnedAt    *time.Time         `json:"returnedAt,omitempty"`
}
