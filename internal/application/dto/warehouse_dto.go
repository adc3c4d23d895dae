package dto

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
