package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación en memoria de DeliveryRepository.
type DeliveryRepo struct {
	store *Store
	tx    *dataset
}

// Create persiste una entrega.
func (r *DeliveryRepo) Create(_ context.Context, delivery *entity.Delivery) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.deliveries[delivery.ID]; ok {
			return domain.ErrDuplicate
		}
		d.deliveries[delivery.ID] = delivery.Clone()
		return nil
	})
}

// GetByID obtiene una entrega. nil, nil si no existe.
func (r *DeliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.store.view(r.tx, func(d *dataset) error {
		out = d.deliveries[id].Clone()
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID; el Store ya serializa las transacciones.
func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, id)
}

// FindActiveByQuote devuelve la entrega activa más reciente de la cotización.
func (r *DeliveryRepo) FindActiveByQuote(_ context.Context, quoteID int64) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.store.view(r.tx, func(d *dataset) error {
		for _, del := range d.deliveries {
			if del.QuoteID != quoteID || del.Status != entity.DeliveryStatusActive {
				continue
			}
			if out == nil || del.ApprovedAt.After(out.ApprovedAt) {
				out = del
			}
		}
		out = out.Clone()
		return nil
	})
	return out, err
}

// UpdateStatus actualiza estado y fecha de devolución.
func (r *DeliveryRepo) UpdateStatus(_ context.Context, delivery *entity.Delivery) error {
	return r.store.view(r.tx, func(d *dataset) error {
		cur, ok := d.deliveries[delivery.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = delivery.Status
		if delivery.ReturnedAt != nil {
			t := *delivery.ReturnedAt
			cur.ReturnedAt = &t
		} else {
			cur.ReturnedAt = nil
		}
		return nil
	})
}

// List devuelve todas las entregas, más recientes primero.
func (r *DeliveryRepo) List(_ context.Context) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	err := r.store.view(r.tx, func(d *dataset) error {
		for _, del := range d.deliveries {
			out = append(out, del.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApprovedAt.Equal(out[j].ApprovedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ApprovedAt.After(out[j].ApprovedAt)
	})
	return out, err
}

// Delete elimina una entrega.
func (r *DeliveryRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.deliveries[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.deliveries, id)
		return nil
	})
}
