package usecase

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/pkg/export"
	"github.com/shopspring/decimal"
)

// PartUseCase casos de uso del inventario de repuestos. Los cambios de existencia pasan por el
// libro de stock para que quede el movimiento.
type PartUseCase struct {
	repo       repository.PartRepository
	warehouses repository.WarehouseRepository
	movements  repository.StockMovementRepository
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(
	repo repository.PartRepository,
	warehouses repository.WarehouseRepository,
	movements repository.StockMovementRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
) *PartUseCase {
	return &PartUseCase{repo: repo, warehouses: warehouses, movements: movements, txRunner: txRunner, ledger: ledger}
}

// Create registra un repuesto. La existencia inicial entra como movimiento IN.
func (uc *PartUseCase) Create(ctx context.Context, userID string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if err := uc.checkWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := checkAmounts(in.Price, in.Cost); err != nil {
		return nil, err
	}
	if err := uc.checkPartNumber(ctx, "", in.PartNumber, in.WarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	part := &entity.Part{
		ID:               uuid.New().String(),
		PartNumber:       strings.TrimSpace(in.PartNumber),
		Name:             strings.TrimSpace(in.Name),
		Brand:            in.Brand,
		Model:            in.Model,
		CompatibleModels: in.CompatibleModels,
		Price:            in.Price,
		Cost:             in.Cost,
		MinStock:         in.MinStock,
		Location:         in.Location,
		WarehouseID:      in.WarehouseID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		if err := repos.Parts.Create(ctx, part); err != nil {
			return err
		}
		return uc.adjustTo(ctx, repos, part, in.Stock, inventory.ReferenceInitial, userID)
	})
	if err != nil {
		return nil, err
	}
	part.Stock = in.Stock
	return dto.FromPart(part), nil
}

// GetByID obtiene un repuesto por ID.
func (uc *PartUseCase) GetByID(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromPart(part), nil
}

// Update edita un repuesto. Si cambia la existencia se registra un ajuste manual.
func (uc *PartUseCase) Update(ctx context.Context, id, userID string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if in.WarehouseID != nil {
		if err := uc.checkWarehouse(ctx, *in.WarehouseID); err != nil {
			return nil, err
		}
	}
	var out *entity.Part
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		part, err := repos.Parts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		if in.WarehouseID != nil {
			part.WarehouseID = *in.WarehouseID
		}
		if in.PartNumber != nil {
			part.PartNumber = strings.TrimSpace(*in.PartNumber)
		}
		if in.Name != nil {
			part.Name = strings.TrimSpace(*in.Name)
		}
		if in.Brand != nil {
			part.Brand = *in.Brand
		}
		if in.Model != nil {
			part.Model = *in.Model
		}
		if in.CompatibleModels != nil {
			part.CompatibleModels = in.CompatibleModels
		}
		if in.Price != nil {
			part.Price = *in.Price
		}
		if in.Cost != nil {
			part.Cost = *in.Cost
		}
		if in.MinStock != nil {
			part.MinStock = *in.MinStock
		}
		if in.Location != nil {
			part.Location = *in.Location
		}
		if err := checkAmounts(part.Price, part.Cost); err != nil {
			return err
		}
		if in.PartNumber != nil || in.WarehouseID != nil {
			if err := checkPartNumber(ctx, repos.Parts, part.ID, part.PartNumber, part.WarehouseID); err != nil {
				return err
			}
		}
		part.UpdatedAt = time.Now()
		if err := repos.Parts.Update(ctx, part); err != nil {
			return err
		}
		if in.Stock != nil {
			if err := uc.adjustTo(ctx, repos, part, *in.Stock, inventory.ReferenceManual, userID); err != nil {
				return err
			}
			part.Stock = *in.Stock
		}
		out = part
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromPart(out), nil
}

// List lista repuestos con búsqueda por número de parte, nombre, marca o modelo compatible.
func (uc *PartUseCase) List(ctx context.Context, q dto.PartListQuery) ([]dto.PartResponse, error) {
	list, err := uc.repo.List(ctx, repository.PartFilter{Search: q.Search, WarehouseID: q.WarehouseID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromPart(p))
	}
	return items, nil
}

// Movements historial del libro de stock de un repuesto, más recientes primero.
func (uc *PartUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movements.ListByPart(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			PartID:        m.PartID,
			WarehouseID:   m.WarehouseID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			StockAfter:    m.StockAfter,
			UnitCost:      m.UnitCost,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un repuesto. Las cotizaciones que lo referencian conservan su copia de la línea.
func (uc *PartUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ExportExcel genera el inventario completo en XLSX.
func (uc *PartUseCase) ExportExcel(ctx context.Context, q dto.PartListQuery) ([]byte, error) {
	list, err := uc.repo.List(ctx, repository.PartFilter{Search: q.Search, WarehouseID: q.WarehouseID})
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(warehouses))
	for _, w := range warehouses {
		names[w.ID] = w.Name
	}

	t := &export.Table{
		Sheet: "Inventario",
		Headers: []string{"Código", "Nombre", "Marca", "Modelo", "Modelos Compatibles", "Precio", "Costo",
			"Stock", "Stock Mínimo", "Ubicación", "Almacén"},
	}
	for _, p := range list {
		t.Append(p.PartNumber, p.Name, p.Brand, p.Model, strings.Join(p.CompatibleModels, ", "),
			p.Price, p.Cost, p.Stock, p.MinStock, p.Location, names[p.WarehouseID])
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// adjustTo lleva la existencia del repuesto a target mediante el libro de stock.
func (uc *PartUseCase) adjustTo(ctx context.Context, repos inventory.Repos, part *entity.Part, target int, ref, userID string) error {
	if target < 0 {
		return domain.Invalid("El stock no puede ser negativo.")
	}
	current, err := repos.Parts.GetForUpdate(ctx, part.ID, part.WarehouseID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	delta := target - current.Stock
	if delta == 0 {
		return nil
	}
	dir := inventory.Increase
	if delta < 0 {
		dir, delta = inventory.Decrease, -delta
	}
	_, err = uc.ledger.AdjustTx(ctx, repos, inventory.AdjustInput{
		Items: []entity.LineItem{{
			ID:          part.ID,
			PartNumber:  part.PartNumber,
			Name:        part.Name,
			WarehouseID: part.WarehouseID,
			Quantity:    delta,
			Cost:        part.Cost,
		}},
		Direction: dir,
		Reference: ref,
		UserID:    userID,
	})
	return err
}

func (uc *PartUseCase) checkWarehouse(ctx context.Context, id string) error {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.Invalid("La bodega indicada no existe.")
	}
	return nil
}

func (uc *PartUseCase) checkPartNumber(ctx context.Context, selfID, number, warehouseID string) error {
	return checkPartNumber(ctx, uc.repo, selfID, number, warehouseID)
}

// checkPartNumber el número de parte es único dentro de una bodega.
func checkPartNumber(ctx context.Context, repo repository.PartRepository, selfID, number, warehouseID string) error {
	list, err := repo.List(ctx, repository.PartFilter{WarehouseID: warehouseID, Search: number})
	if err != nil {
		return err
	}
	for _, p := range list {
		if p.ID != selfID && strings.EqualFold(p.PartNumber, strings.TrimSpace(number)) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func checkAmounts(price, cost decimal.Decimal) error {
	if price.IsNegative() || cost.IsNegative() {
		return domain.Invalid("Precio y costo no pueden ser negativos.")
	}
	return nil
}
