package entity

import "time"

// Client representa un cliente al que se emiten cotizaciones.
type Client struct {
	ID        string
	Name      string
	RIF       string // identificación fiscal
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
