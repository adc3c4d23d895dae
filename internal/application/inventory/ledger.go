package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/pkg/logger"
	"github.com/jhoicas/repuestos-api/pkg/metrics"
)

// Direction sentido del ajuste de stock.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Referencias de los movimientos según su origen.
const (
	ReferenceInitial = "inventario:inicial"
	ReferenceManual  = "ajuste:manual"

	salePrefix   = "cotizacion:"
	returnPrefix = "entrega:"
)

// SaleReference referencia de la salida por aprobación de una cotización.
func SaleReference(quoteID int64) string { return fmt.Sprintf("%s%d", salePrefix, quoteID) }

// ReturnReference referencia de la entrada por devolución de una entrega.
func ReturnReference(deliveryID string) string { return returnPrefix + deliveryID }

// LedgerConfig política del libro de stock.
type LedgerConfig struct {
	// StrictLookup: si un ítem no existe en (repuesto, bodega) el ajuste completo falla con ErrNotFound.
	// En false el ítem se omite y se registra una advertencia.
	StrictLookup bool
}

// AdjustInput ítems a ajustar y referencia del documento que origina el ajuste.
type AdjustInput struct {
	Items     []entity.LineItem
	Direction Direction
	Reference string
	UserID    string
}

// AdjustResult resumen de lo aplicado.
type AdjustResult struct {
	TransactionID string
	Applied       int // líneas aplicadas
	Skipped       int // líneas sin repuesto en la bodega (solo con StrictLookup=false)
	Units         int
}

// Ledger aplica ajustes de stock por (repuesto, bodega) de forma atómica: con SELECT FOR UPDATE
// sobre cada fila y Commit/Rollback del lote completo.
type Ledger struct {
	txRunner TxRunner
	cfg      LedgerConfig
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewLedger construye el libro de stock.
func NewLedger(txRunner TxRunner, cfg LedgerConfig, log *logger.Logger, m *metrics.Metrics) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{txRunner: txRunner, cfg: cfg, log: log.Component("stock_ledger"), metrics: m}
}

// Adjust abre su propia transacción y aplica todos los ítems o ninguno.
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	var res *AdjustResult
	err := l.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		res, err = l.AdjustTx(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AdjustTx aplica el ajuste con los repositorios de una transacción abierta por el caller
// (aprobación y devolución de cotizaciones). Los ítems de servicio se ignoran.
func (l *Ledger) AdjustTx(ctx context.Context, repos Repos, in AdjustInput) (res *AdjustResult, err error) {
	defer func() {
		units := 0
		if res != nil {
			units = res.Units
		}
		l.metrics.StockAdjusted(string(in.Direction), units, err)
	}()

	if in.Direction != Increase && in.Direction != Decrease {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	res = &AdjustResult{TransactionID: uuid.New().String()}

	for _, item := range in.Items {
		if item.IsService {
			continue
		}
		if item.Quantity <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("cantidad inválida para %s", item.ID))
		}
		// Bloquea la fila del repuesto en su bodega para evitar condiciones de carrera
		part, err := repos.Parts.GetForUpdate(ctx, item.ID, item.WarehouseID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			if l.cfg.StrictLookup {
				return nil, fmt.Errorf("repuesto %s en bodega %s: %w", item.ID, item.WarehouseID, domain.ErrNotFound)
			}
			l.log.Warn().
				Str("part_id", item.ID).
				Str("warehouse_id", item.WarehouseID).
				Str("reference", in.Reference).
				Msg("repuesto no encontrado en la bodega, ítem omitido")
			res.Skipped++
			continue
		}

		if err := l.apply(ctx, repos, part, item, in, res.TransactionID, now); err != nil {
			return nil, err
		}
		res.Applied++
		res.Units += item.Quantity
	}
	return res, nil
}

// apply suma o resta la cantidad y guarda el movimiento con el stock resultante.
func (l *Ledger) apply(
	ctx context.Context,
	repos Repos,
	part *entity.Part,
	item entity.LineItem,
	in AdjustInput,
	txID string,
	now time.Time,
) error {
	qty := item.Quantity
	movType := entity.MovementTypeIN
	if in.Direction == Decrease {
		if part.Stock < item.Quantity {
			return &domain.InsufficientStockError{
				PartID:      part.ID,
				WarehouseID: part.WarehouseID,
				Available:   part.Stock,
				Requested:   item.Quantity,
			}
		}
		qty = -item.Quantity
		movType = entity.MovementTypeOUT
	}
	newStock := part.Stock + qty
	if err := repos.Parts.UpdateStock(ctx, part.ID, part.WarehouseID, newStock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		PartID:        part.ID,
		WarehouseID:   part.WarehouseID,
		Type:          movType,
		Quantity:      qty,
		StockAfter:    newStock,
		UnitCost:      part.Cost,
		Reference:     in.Reference,
		CreatedAt:     now,
		CreatedBy:     in.UserID,
	}
	return repos.Movements.Create(ctx, mov)
}
