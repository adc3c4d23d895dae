package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo lectura en memoria de la lista de bodegas.
type WarehouseRepo struct {
	store *Store
}

// GetByID obtiene una bodega por ID. nil, nil si no existe.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.store.view(nil, func(d *dataset) error {
		if w, ok := d.warehouses[id]; ok {
			c := *w
			out = &c
		}
		return nil
	})
	return out, err
}

// List devuelve las bodegas ordenadas por ID.
func (r *WarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.store.view(nil, func(d *dataset) error {
		for _, w := range d.warehouses {
			c := *w
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
