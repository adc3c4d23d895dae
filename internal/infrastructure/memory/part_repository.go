package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación en memoria de PartRepository.
type PartRepo struct {
	store *Store
	tx    *dataset
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(_ context.Context, part *entity.Part) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.parts[part.ID]; ok {
			return domain.ErrDuplicate
		}
		d.parts[part.ID] = part.Clone()
		return nil
	})
}

// GetByID obtiene un repuesto por ID. nil, nil si no existe.
func (r *PartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	var out *entity.Part
	err := r.store.view(r.tx, func(d *dataset) error {
		out = d.parts[id].Clone()
		return nil
	})
	return out, err
}

// GetForUpdate busca por (id, bodega). El bloqueo lo da la serialización de transacciones del Store.
func (r *PartRepo) GetForUpdate(_ context.Context, id, warehouseID string) (*entity.Part, error) {
	var out *entity.Part
	err := r.store.view(r.tx, func(d *dataset) error {
		p, ok := d.parts[id]
		if ok && p.WarehouseID == warehouseID {
			out = p.Clone()
		}
		return nil
	})
	return out, err
}

// Update reemplaza los datos del repuesto conservando la existencia actual.
func (r *PartRepo) Update(_ context.Context, part *entity.Part) error {
	return r.store.view(r.tx, func(d *dataset) error {
		cur, ok := d.parts[part.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := part.Clone()
		next.Stock = cur.Stock
		d.parts[part.ID] = next
		return nil
	})
}

// UpdateStock fija la existencia del repuesto en su bodega.
func (r *PartRepo) UpdateStock(_ context.Context, id, warehouseID string, stock int) error {
	return r.store.view(r.tx, func(d *dataset) error {
		p, ok := d.parts[id]
		if !ok || p.WarehouseID != warehouseID {
			return domain.ErrNotFound
		}
		p.Stock = stock
		return nil
	})
}

// List devuelve los repuestos que cumplen el filtro ordenados por número de parte.
func (r *PartRepo) List(_ context.Context, filter repository.PartFilter) ([]*entity.Part, error) {
	var out []*entity.Part
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	err := r.store.view(r.tx, func(d *dataset) error {
		for _, p := range d.parts {
			if filter.WarehouseID != "" && p.WarehouseID != filter.WarehouseID {
				continue
			}
			if filter.LowStockOnly && !p.IsLowStock() {
				continue
			}
			if search != "" && !matchesPart(p, search) {
				continue
			}
			out = append(out, p.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartNumber == out[j].PartNumber {
			return out[i].ID < out[j].ID
		}
		return out[i].PartNumber < out[j].PartNumber
	})
	return out, err
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.parts[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.parts, id)
		return nil
	})
}

func matchesPart(p *entity.Part, search string) bool {
	if strings.Contains(strings.ToLower(p.PartNumber), search) ||
		strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Brand), search) {
		return true
	}
	for _, m := range p.CompatibleModels {
		if strings.Contains(strings.ToLower(m), search) {
			return true
		}
	}
	return false
}
