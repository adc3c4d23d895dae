package entity

import "time"

// Seller representa un vendedor asignable a una cotización.
type Seller struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
