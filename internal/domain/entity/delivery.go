package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estado de una entrega.
type DeliveryStatus string

const (
	DeliveryStatusActive   DeliveryStatus = "active"
	DeliveryStatusReturned DeliveryStatus = "devuelta"
)

// Delivery es la nota de entrega creada al aprobar una cotización. Las líneas son
// una copia fija de la cotización en el momento de la aprobación; solo cambia el estado.
type Delivery struct {
	ID            string
	QuoteID       int64
	Client        ClientInfo
	Date          time.Time
	Items         []LineItem
	PaymentMethod string
	Currency      string
	SellerID      string
	Status        DeliveryStatus
	ApprovedAt    time.Time
	ReturnedAt    *time.Time
}

// NewDeliveryFromQuote crea la entrega activa a partir de la cotización aprobada.
func NewDeliveryFromQuote(id string, q *Quote, now time.Time) *Delivery {
	return &Delivery{
		ID:            id,
		QuoteID:       q.ID,
		Client:        q.Client,
		Date:          q.Date,
		Items:         CloneItems(q.Items),
		PaymentMethod: q.PaymentMethod,
		Currency:      q.Currency,
		SellerID:      q.SellerID,
		Status:        DeliveryStatusActive,
		ApprovedAt:    now,
	}
}

// Total recalculado desde las líneas.
func (d *Delivery) Total() decimal.Decimal {
	return SumItems(d.Items)
}

// CostTotal costo de las líneas (servicios en cero).
func (d *Delivery) CostTotal() decimal.Decimal {
	return SumItemsCost(d.Items)
}

// IsReturned indica si la entrega ya fue devuelta al inventario.
func (d *Delivery) IsReturned() bool {
	return d.Status == DeliveryStatusReturned
}

// Clone devuelve una copia independiente de la entrega.
func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = CloneItems(d.Items)
	if d.ReturnedAt != nil {
		t := *d.ReturnedAt
		c.ReturnedAt = &t
	}
	return &c
}
