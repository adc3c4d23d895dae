package dto

import "time"

// ClientRequest entrada para crear o editar un cliente.
type ClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	RIF     string `json:"rif" validate:"max=50"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RIF       string    `json:"rif"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SellerRequest entrada para crear o editar un vendedor.
type SellerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// SellerResponse salida de un vendedor.
type SellerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
