package kv

import (
	"context"
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

type sellerRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SellerRepo vendedores guardados como lista JSON bajo la clave "sellers".
type SellerRepo struct {
	col *collection[sellerRecord]
}

// NewSellerRepository construye el repositorio de vendedores.
func NewSellerRepository(store Store, locker Locker) *SellerRepo {
	return &SellerRepo{col: &collection[sellerRecord]{store: store, locker: locker, key: KeySellers}}
}

// Create agrega un vendedor.
func (r *SellerRepo) Create(ctx context.Context, seller *entity.Seller) error {
	return r.col.mutate(ctx, func(list []sellerRecord) ([]sellerRecord, error) {
		for _, rec := range list {
			if rec.ID == seller.ID {
				return nil, domain.ErrDuplicate
			}
		}
		return append(list, sellerRecord{ID: seller.ID, Name: seller.Name, CreatedAt: seller.CreatedAt}), nil
	})
}

// GetByID obtiene un vendedor. nil, nil si no existe.
func (r *SellerRepo) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if rec.ID == id {
			return &entity.Seller{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt}, nil
		}
	}
	return nil, nil
}

// List devuelve los vendedores en orden de alta.
func (r *SellerRepo) List(ctx context.Context) ([]*entity.Seller, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Seller, 0, len(list))
	for _, rec := range list {
		out = append(out, &entity.Seller{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt})
	}
	return out, nil
}

// Update cambia el nombre de un vendedor.
func (r *SellerRepo) Update(ctx context.Context, seller *entity.Seller) error {
	return r.col.mutate(ctx, func(list []sellerRecord) ([]sellerRecord, error) {
		for i, rec := range list {
			if rec.ID == seller.ID {
				list[i].Name = seller.Name
				return list, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// Delete elimina un vendedor.
func (r *SellerRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(list []sellerRecord) ([]sellerRecord, error) {
		for i, rec := range list {
			if rec.ID == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
