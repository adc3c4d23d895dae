package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación en memoria de QuoteRepository.
type QuoteRepo struct {
	store *Store
	tx    *dataset
}

// Create persiste una cotización nueva.
func (r *QuoteRepo) Create(_ context.Context, quote *entity.Quote) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.quotes[quote.ID]; ok {
			return domain.ErrDuplicate
		}
		d.quotes[quote.ID] = quote.Clone()
		return nil
	})
}

// GetByID obtiene una cotización. nil, nil si no existe.
func (r *QuoteRepo) GetByID(_ context.Context, id int64) (*entity.Quote, error) {
	var out *entity.Quote
	err := r.store.view(r.tx, func(d *dataset) error {
		out = d.quotes[id].Clone()
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID; el Store ya serializa las transacciones.
func (r *QuoteRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Quote, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza la cotización.
func (r *QuoteRepo) Update(_ context.Context, quote *entity.Quote) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.quotes[quote.ID]; !ok {
			return domain.ErrNotFound
		}
		d.quotes[quote.ID] = quote.Clone()
		return nil
	})
}

// List devuelve las cotizaciones filtradas, más recientes primero.
func (r *QuoteRepo) List(_ context.Context, filter repository.QuoteFilter) ([]*entity.Quote, error) {
	var out []*entity.Quote
	err := r.store.view(r.tx, func(d *dataset) error {
		for _, q := range d.quotes {
			if filter.Status != "" && q.Status != filter.Status {
				continue
			}
			if filter.SellerID != "" && q.SellerID != filter.SellerID {
				continue
			}
			out = append(out, q.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

// Delete elimina una cotización.
func (r *QuoteRepo) Delete(_ context.Context, id int64) error {
	return r.store.view(r.tx, func(d *dataset) error {
		if _, ok := d.quotes[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.quotes, id)
		return nil
	})
}
