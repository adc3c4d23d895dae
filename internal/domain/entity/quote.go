package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de una cotización.
type QuoteStatus string

// Estados de la cotización: pendiente → aprobada → devuelta (terminal).
const (
	QuoteStatusPending  QuoteStatus = "pendiente"
	QuoteStatusApproved QuoteStatus = "aprobada"
	QuoteStatusReturned QuoteStatus = "devuelta"
)

// Formas de pago y moneda por defecto.
const (
	PaymentMethodCash   = "contado"
	PaymentMethodCredit = "credito"
	DefaultCurrency     = "usd"
)

// ClientInfo datos del cliente copiados en el documento.
type ClientInfo struct {
	Name    string
	RIF     string
	Phone   string
	Address string
}

// Quote representa una propuesta de venta pendiente de aprobación.
type Quote struct {
	ID            int64
	Client        ClientInfo
	Date          time.Time
	Items         []LineItem
	PaymentMethod string
	Currency      string
	SellerID      string
	Status        QuoteStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Total se recalcula siempre desde las líneas; nunca se confía en un valor almacenado.
func (q *Quote) Total() decimal.Decimal {
	return SumItems(q.Items)
}

// IsPending indica si la cotización todavía puede editarse o aprobarse.
func (q *Quote) IsPending() bool {
	return q.Status == QuoteStatusPending
}

// Clone devuelve una copia independiente de la cotización.
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}
	c := *q
	c.Items = CloneItems(q.Items)
	return &c
}

// ValidPaymentMethod indica si la forma de pago es conocida.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCredit
}
