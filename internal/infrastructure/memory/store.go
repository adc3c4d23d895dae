package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// dataset estado completo del almacenamiento en memoria.
type dataset struct {
	parts      map[string]*entity.Part
	warehouses map[string]*entity.Warehouse
	quotes     map[int64]*entity.Quote
	deliveries map[string]*entity.Delivery
	movements  []*entity.StockMovement
}

func newDataset() *dataset {
	return &dataset{
		parts:      make(map[string]*entity.Part),
		warehouses: make(map[string]*entity.Warehouse),
		quotes:     make(map[int64]*entity.Quote),
		deliveries: make(map[string]*entity.Delivery),
	}
}

// clone copia profunda; base de las transacciones (se trabaja sobre la copia y se publica al final).
func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.parts {
		c.parts[k] = v.Clone()
	}
	for k, v := range d.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range d.quotes {
		c.quotes[k] = v.Clone()
	}
	for k, v := range d.deliveries {
		c.deliveries[k] = v.Clone()
	}
	c.movements = make([]*entity.StockMovement, len(d.movements))
	for i, m := range d.movements {
		mv := *m
		c.movements[i] = &mv
	}
	return c
}

// Store almacenamiento relacional en memoria: repuestos, bodegas, cotizaciones, entregas y movimientos.
// Se usa en tests y como respaldo cuando no hay PostgreSQL (STORE_DRIVER=memory).
// Las transacciones se serializan con un mutex y trabajan sobre una copia que solo se publica en Commit.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Run ejecuta fn con repositorios atados a una copia del estado; si fn devuelve error la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.data.clone()
	repos := inventory.Repos{
		Parts:      &PartRepo{store: s, tx: tx},
		Movements:  &StockMovementRepo{store: s, tx: tx},
		Quotes:     &QuoteRepo{store: s, tx: tx},
		Deliveries: &DeliveryRepo{store: s, tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// view ejecuta fn sobre el dataset de la transacción o, fuera de ella, sobre el estado publicado con el mutex tomado.
func (s *Store) view(tx *dataset, fn func(d *dataset) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Parts repositorio de repuestos fuera de transacción.
func (s *Store) Parts() *PartRepo { return &PartRepo{store: s} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{store: s} }

// Quotes repositorio de cotizaciones fuera de transacción.
func (s *Store) Quotes() *QuoteRepo { return &QuoteRepo{store: s} }

// Deliveries repositorio de entregas fuera de transacción.
func (s *Store) Deliveries() *DeliveryRepo { return &DeliveryRepo{store: s} }

// Movements repositorio de movimientos de stock fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{store: s} }

// SeedWarehouses carga la lista fija de bodegas.
func (s *Store) SeedWarehouses(list ...*entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range list {
		c := *w
		s.data.warehouses[w.ID] = &c
	}
}
