package memory

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria de StockMovementRepository.
type StockMovementRepo struct {
	store *Store
	tx    *dataset
}

// Create agrega un movimiento.
func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.store.view(r.tx, func(d *dataset) error {
		m := *movement
		d.movements = append(d.movements, &m)
		return nil
	})
}

// ListByPart devuelve los movimientos del repuesto, más recientes primero.
func (r *StockMovementRepo) ListByPart(_ context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.store.view(r.tx, func(d *dataset) error {
		for i := len(d.movements) - 1; i >= 0; i-- {
			if d.movements[i].PartID != partID {
				continue
			}
			m := *d.movements[i]
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
