package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/usecase"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newPartUseCase(t *testing.T) (*usecase.PartUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil)
	return usecase.NewPartUseCase(store.Parts(), store.Warehouses(), store.Movements(), store, ledger), store
}

func createPart(t *testing.T, uc *usecase.PartUseCase, number, warehouse string, stock int) *dto.PartResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), "u1", dto.CreatePartRequest{
		PartNumber:       number,
		Name:             "Filtro de Aceite",
		Brand:            "Mann-Filter",
		CompatibleModels: []string{"Volvo FH", "Scania R"},
		Price:            decimal.RequireFromString("25.50"),
		Cost:             decimal.NewFromInt(15),
		Stock:            stock,
		MinStock:         2,
		WarehouseID:      warehouse,
	})
	require.NoError(t, err)
	return out
}

func TestPartUseCase_CreateRegistraStockInicial(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)

	created := createPart(t, uc, "ABC-123", "1", 12)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 12, created.Stock)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	movs, err := uc.Movements(ctx, created.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs.Items, 1)
	assert.Equal(t, inventory.ReferenceInitial, movs.Items[0].Reference)
	assert.Equal(t, 12, movs.Items[0].Quantity)
	assert.Equal(t, "u1", movs.Items[0].CreatedBy)
}

func TestPartUseCase_CreateValidaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)
	createPart(t, uc, "ABC-123", "1", 1)

	_, err := uc.Create(ctx, "u1", dto.CreatePartRequest{PartNumber: "abc-123", Name: "Otro", WarehouseID: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "número de parte repetido en la misma bodega")

	_, err = uc.Create(ctx, "u1", dto.CreatePartRequest{PartNumber: "ABC-123", Name: "Otro", WarehouseID: "2"})
	assert.NoError(t, err, "el mismo número en otra bodega es válido")

	_, err = uc.Create(ctx, "u1", dto.CreatePartRequest{PartNumber: "N-1", Name: "Otro", WarehouseID: "9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreatePartRequest{PartNumber: "N-2", Name: "Otro", WarehouseID: "1", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartUseCase_UpdateAjustaStockPorLibro(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)
	created := createPart(t, uc, "ABC-123", "1", 10)

	stock := 4
	name := "Filtro de Aceite HD"
	out, err := uc.Update(ctx, created.ID, "u2", dto.UpdatePartRequest{Stock: &stock, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Stock)
	assert.Equal(t, name, out.Name)

	movs, err := uc.Movements(ctx, created.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs.Items, 2)
	assert.Equal(t, inventory.ReferenceManual, movs.Items[0].Reference)
	assert.Equal(t, -6, movs.Items[0].Quantity)
	assert.Equal(t, 4, movs.Items[0].StockAfter)

	// Cambiar solo el nombre no genera movimientos ni toca la existencia
	name = "Filtro"
	out, err = uc.Update(ctx, created.ID, "u2", dto.UpdatePartRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Stock)
	movs, err = uc.Movements(ctx, created.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs.Items, 2)

	missing := "no-existe"
	_, err = uc.Update(ctx, missing, "u2", dto.UpdatePartRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_ListBuscaPorModeloCompatible(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)
	createPart(t, uc, "ABC-123", "1", 1)
	createPart(t, uc, "XYZ-456", "2", 1)

	all, err := uc.List(ctx, dto.PartListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byModel, err := uc.List(ctx, dto.PartListQuery{Search: "scania"})
	require.NoError(t, err)
	assert.Len(t, byModel, 2)

	byWarehouse, err := uc.List(ctx, dto.PartListQuery{WarehouseID: "2"})
	require.NoError(t, err)
	require.Len(t, byWarehouse, 1)
	assert.Equal(t, "XYZ-456", byWarehouse[0].PartNumber)
}

func TestPartUseCase_ExportExcel(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)
	createPart(t, uc, "ABC-123", "1", 7)

	data, err := uc.ExportExcel(ctx, dto.PartListQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Inventario", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Código", header)
	number, err := f.GetCellValue("Inventario", "A2")
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", number)
	warehouse, err := f.GetCellValue("Inventario", "K2")
	require.NoError(t, err)
	assert.Equal(t, "Almacén Principal", warehouse)
}

func TestPartUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPartUseCase(t)
	created := createPart(t, uc, "ABC-123", "1", 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err := uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}
