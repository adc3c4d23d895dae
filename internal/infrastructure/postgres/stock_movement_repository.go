package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, part_id, warehouse_id, type, quantity, stock_after, unit_cost, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.PartID, m.WarehouseID, m.Type, m.Quantity, m.StockAfter,
		m.UnitCost, m.Reference, m.CreatedAt, nullableString(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByPart lista los movimientos del repuesto, más recientes primero.
func (r *StockMovementRepo) ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, transaction_id, part_id, warehouse_id, type, quantity, stock_after, unit_cost, reference, created_at, created_by
		FROM stock_movements WHERE part_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m         entity.StockMovement
			createdBy *string
		)
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.PartID, &m.WarehouseID, &m.Type, &m.Quantity,
			&m.StockAfter, &m.UnitCost, &m.Reference, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
