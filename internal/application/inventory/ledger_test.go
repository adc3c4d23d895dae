package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	now := time.Now()
	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	store.SeedParts(
		&entity.Part{ID: "p1", PartNumber: "ABC-123", Name: "Filtro", Cost: decimal.NewFromInt(15), Price: decimal.NewFromInt(25),
			Stock: 10, MinStock: 2, WarehouseID: "1", CreatedAt: now, UpdatedAt: now},
		&entity.Part{ID: "p2", PartNumber: "XYZ-456", Name: "Pastillas", Cost: decimal.NewFromInt(70), Price: decimal.NewFromInt(120),
			Stock: 3, MinStock: 5, WarehouseID: "2", CreatedAt: now, UpdatedAt: now},
	)
	return store
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.Parts().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func item(id, warehouse string, qty int) entity.LineItem {
	return entity.LineItem{ID: id, WarehouseID: warehouse, Quantity: qty, Price: decimal.NewFromInt(1)}
}

func TestLedger_DecreaseRegistraMovimientos(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	res, err := ledger.Adjust(ctx, inventory.AdjustInput{
		Items:     []entity.LineItem{item("p1", "1", 4), item("p2", "2", 1)},
		Direction: inventory.Decrease,
		Reference: inventory.SaleReference(1000),
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 5, res.Units)
	assert.NotEmpty(t, res.TransactionID)

	assert.Equal(t, 6, stockOf(t, store, "p1"))
	assert.Equal(t, 2, stockOf(t, store, "p2"))

	movs, err := store.Movements().ListByPart(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, -4, movs[0].Quantity)
	assert.Equal(t, 6, movs[0].StockAfter)
	assert.Equal(t, "cotizacion:1000", movs[0].Reference)
	assert.Equal(t, res.TransactionID, movs[0].TransactionID)
	assert.True(t, decimal.NewFromInt(15).Equal(movs[0].UnitCost))
}

func TestLedger_StockInsuficienteRevierteTodo(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	_, err := ledger.Adjust(ctx, inventory.AdjustInput{
		Items:     []entity.LineItem{item("p1", "1", 4), item("p2", "2", 4)},
		Direction: inventory.Decrease,
		Reference: inventory.SaleReference(1000),
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "p2", stockErr.PartID)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 4, stockErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El primer ítem tampoco debe quedar aplicado
	assert.Equal(t, 10, stockOf(t, store, "p1"))
	movs, err := store.Movements().ListByPart(ctx, "p1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestLedger_BusquedaEstricta(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	// p1 no existe en la bodega 2
	_, err := ledger.Adjust(ctx, inventory.AdjustInput{
		Items:     []entity.LineItem{item("p2", "2", 1), item("p1", "2", 1)},
		Direction: inventory.Decrease,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, stockOf(t, store, "p2"))
}

func TestLedger_BusquedaPermisivaOmiteItem(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: false}, nil, nil)

	res, err := ledger.Adjust(ctx, inventory.AdjustInput{
		Items:     []entity.LineItem{item("p2", "2", 1), item("nope", "1", 1)},
		Direction: inventory.Increase,
		Reference: inventory.ReturnReference("d1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 4, stockOf(t, store, "p2"))
}

func TestLedger_IgnoraServicios(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	service := entity.LineItem{ID: "manual-x", WarehouseID: entity.NotApplicable, Quantity: 2, IsService: true}
	res, err := ledger.Adjust(ctx, inventory.AdjustInput{
		Items:     []entity.LineItem{service, item("p1", "1", 1)},
		Direction: inventory.Decrease,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 9, stockOf(t, store, "p1"))
}

func TestLedger_Validaciones(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	_, err := ledger.Adjust(ctx, inventory.AdjustInput{Items: []entity.LineItem{item("p1", "1", 1)}, Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Adjust(ctx, inventory.AdjustInput{Items: []entity.LineItem{item("p1", "1", 0)}, Direction: inventory.Decrease})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, stockOf(t, store, "p1"))
}

func TestReplenishment_LowStock(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)

	// p1 baja a 2 (mínimo 2) con 8 unidades vendidas y 1 devuelta
	_, err := ledger.Adjust(ctx, inventory.AdjustInput{Items: []entity.LineItem{item("p1", "1", 8)}, Direction: inventory.Decrease, Reference: inventory.SaleReference(1000)})
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{Items: []entity.LineItem{item("p1", "1", 1)}, Direction: inventory.Increase, Reference: inventory.ReturnReference("d1")})
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{Items: []entity.LineItem{item("p1", "1", 1)}, Direction: inventory.Decrease, Reference: inventory.SaleReference(1001)})
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(store.Parts(), store.Movements())
	out, err := uc.LowStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, out, 2)

	// p2 tiene el mayor déficit (5-3) y va primero
	assert.Equal(t, "p2", out[0].PartID)
	assert.Equal(t, 1, out[0].Priority)
	assert.Equal(t, 7, out[0].SuggestedQuantity)
	assert.True(t, decimal.NewFromInt(490).Equal(out[0].EstimatedOrderCost))

	assert.Equal(t, "p1", out[1].PartID)
	assert.Equal(t, 2, out[1].Stock)
	assert.Equal(t, 2, out[1].SuggestedQuantity)
	assert.Equal(t, 8, out[1].UnitsSold)

	onlyMain, err := uc.LowStock(ctx, "1")
	require.NoError(t, err)
	require.Len(t, onlyMain, 1)
	assert.Equal(t, "p1", onlyMain[0].PartID)
}
