package kv

import (
	"context"
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

type clientRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RIF       string    `json:"rif"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r clientRecord) toEntity() *entity.Client {
	return &entity.Client{
		ID: r.ID, Name: r.Name, RIF: r.RIF, Phone: r.Phone, Address: r.Address,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func newClientRecord(c *entity.Client) clientRecord {
	return clientRecord{
		ID: c.ID, Name: c.Name, RIF: c.RIF, Phone: c.Phone, Address: c.Address,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// ClientRepo clientes guardados como lista JSON bajo la clave "clients".
type ClientRepo struct {
	col *collection[clientRecord]
}

// NewClientRepository construye el repositorio de clientes.
func NewClientRepository(store Store, locker Locker) *ClientRepo {
	return &ClientRepo{col: &collection[clientRecord]{store: store, locker: locker, key: KeyClients}}
}

// Create agrega un cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	return r.col.mutate(ctx, func(list []clientRecord) ([]clientRecord, error) {
		for _, rec := range list {
			if rec.ID == client.ID {
				return nil, domain.ErrDuplicate
			}
		}
		return append(list, newClientRecord(client)), nil
	})
}

// GetByID obtiene un cliente. nil, nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if rec.ID == id {
			return rec.toEntity(), nil
		}
	}
	return nil, nil
}

// List devuelve los clientes en orden de alta.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Client, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.toEntity())
	}
	return out, nil
}

// Update reemplaza un cliente existente.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	return r.col.mutate(ctx, func(list []clientRecord) ([]clientRecord, error) {
		for i, rec := range list {
			if rec.ID == client.ID {
				list[i] = newClientRecord(client)
				return list, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// Delete elimina un cliente.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(list []clientRecord) ([]clientRecord, error) {
		for i, rec := range list {
			if rec.ID == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
