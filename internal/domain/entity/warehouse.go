package entity

// Warehouse representa una bodega. La lista es fija y se carga con las migraciones.
type Warehouse struct {
	ID   string
	Name string
}
