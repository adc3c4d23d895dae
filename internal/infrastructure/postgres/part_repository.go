package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, part_number, name, brand, model, compatible_models, price, cost, stock, min_stock, location, warehouse_id, created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.PartNumber, part.Name, part.Brand, part.Model, modelsOrEmpty(part.CompatibleModels),
		part.Price, part.Cost, part.Stock, part.MinStock, part.Location, part.WarehouseID,
		part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el repuesto en la bodega y bloquea la fila (SELECT FOR UPDATE).
func (r *PartRepo) GetForUpdate(ctx context.Context, id, warehouseID string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 AND warehouse_id = $2 FOR UPDATE`
	p, err := scanPart(r.q.QueryRow(ctx, query, id, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part for update: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del repuesto. No modifica Stock (se maneja vía movimientos).
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	query := `
		UPDATE parts SET part_number = $2, name = $3, brand = $4, model = $5, compatible_models = $6,
			price = $7, cost = $8, min_stock = $9, location = $10, warehouse_id = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		part.ID, part.PartNumber, part.Name, part.Brand, part.Model, modelsOrEmpty(part.CompatibleModels),
		part.Price, part.Cost, part.MinStock, part.Location, part.WarehouseID, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija la existencia del repuesto en su bodega (usado por el libro de stock).
func (r *PartRepo) UpdateStock(ctx context.Context, id, warehouseID string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE parts SET stock = $3, updated_at = now() WHERE id = $1 AND warehouse_id = $2`,
		id, warehouseID, stock,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update part stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los repuestos que cumplen el filtro ordenados por número de parte.
func (r *PartRepo) List(ctx context.Context, filter repository.PartFilter) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE 1=1`
	var args []any
	pos := 1
	if filter.WarehouseID != "" {
		query += ` AND warehouse_id = $` + strconv.Itoa(pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.Search != "" {
		p := `$` + strconv.Itoa(pos)
		query += ` AND (part_number ILIKE ` + p + ` OR name ILIKE ` + p + ` OR brand ILIKE ` + p +
			` OR EXISTS (SELECT 1 FROM unnest(compatible_models) m WHERE m ILIKE ` + p + `))`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.LowStockOnly {
		query += ` AND stock <= min_stock`
	}
	query += ` ORDER BY part_number, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.ID, &p.PartNumber, &p.Name, &p.Brand, &p.Model, &p.CompatibleModels,
		&p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.Location, &p.WarehouseID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func modelsOrEmpty(models []string) []string {
	if models == nil {
		return []string{}
	}
	return models
}
