package document_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/document"
	"github.com/jhoicas/repuestos-api/internal/application/ports"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/kv"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureGenerator struct {
	got ports.DocumentData
}

func (g *captureGenerator) Generate(_ context.Context, data ports.DocumentData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-test"), nil
}

func setup(t *testing.T) (*document.UseCase, *captureGenerator, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	kvStore := kv.NewMemoryStore()
	sellers := kv.NewSellerRepository(kvStore, kv.NewLocalLocker())
	require.NoError(t, sellers.Create(ctx, &entity.Seller{ID: "s1", Name: "Ana", CreatedAt: time.Now()}))
	gen := &captureGenerator{}
	uc := document.NewUseCase(store.Quotes(), store.Deliveries(), sellers, store.Warehouses(), gen)
	return uc, gen, store
}

func sampleQuote() *entity.Quote {
	return &entity.Quote{
		ID:            1000,
		Client:        entity.ClientInfo{Name: "Transportes Lara", RIF: "J-123"},
		Date:          time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: entity.PaymentMethodCredit,
		Currency:      "ves",
		SellerID:      "s1",
		Status:        entity.QuoteStatusPending,
		Items: []entity.LineItem{
			{ID: "p1", PartNumber: "ABC-123", Name: "Filtro", WarehouseID: "1", Quantity: 2, Price: decimal.NewFromInt(10)},
			{ID: "manual-x", PartNumber: entity.NotApplicable, Name: "Instalación", WarehouseID: entity.NotApplicable,
				Quantity: 1, Price: decimal.NewFromInt(5), IsService: true},
		},
	}
}

func TestQuotePDF_ResuelveVendedorBodegaYTotal(t *testing.T) {
	uc, gen, store := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Quotes().Create(ctx, sampleQuote()))

	pdf, name, err := uc.QuotePDF(ctx, 1000)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "cotizacion_1000.pdf", name)

	assert.Equal(t, document.TitleQuote, gen.got.Title)
	assert.Equal(t, "1000", gen.got.Number)
	assert.Equal(t, "2024-05-10", gen.got.Date)
	assert.Equal(t, "Ana", gen.got.SellerName)
	assert.Equal(t, "Crédito", gen.got.PaymentMethod)
	assert.Equal(t, "Bs", gen.got.CurrencySymbol)
	require.Len(t, gen.got.Lines, 2)
	assert.Equal(t, "Almacén Principal", gen.got.Lines[0].Warehouse)
	assert.Equal(t, entity.NotApplicable, gen.got.Lines[1].Warehouse)
	assert.True(t, decimal.NewFromInt(25).Equal(gen.got.Total))
}

func TestQuotePDF_NoExiste(t *testing.T) {
	uc, _, _ := setup(t)
	_, _, err := uc.QuotePDF(context.Background(), 4242)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeliveryPDF_UsaNumeroDeCotizacion(t *testing.T) {
	uc, gen, store := setup(t)
	ctx := context.Background()
	d := entity.NewDeliveryFromQuote("d-1", sampleQuote(), time.Now())
	require.NoError(t, store.Deliveries().Create(ctx, d))

	_, name, err := uc.DeliveryPDF(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "nota_entrega_1000.pdf", name)
	assert.Equal(t, document.TitleDelivery, gen.got.Title)
	assert.Equal(t, "Activa", gen.got.Status)
}
