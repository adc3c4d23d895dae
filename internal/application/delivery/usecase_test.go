package delivery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/delivery"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/quote"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/kv"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*delivery.UseCase, *quote.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	store.SeedParts(&entity.Part{ID: "p1", PartNumber: "ABC-123", Name: "Filtro", Price: decimal.NewFromInt(20),
		Cost: decimal.NewFromInt(12), Stock: 10, WarehouseID: "1"})

	kvStore := kv.NewMemoryStore()
	sellers := kv.NewSellerRepository(kvStore, kv.NewLocalLocker())
	require.NoError(t, sellers.Create(ctx, &entity.Seller{ID: "s1", Name: "Ana", CreatedAt: time.Now()}))

	quotes := quote.NewUseCase(quote.Deps{
		TxRunner:   store,
		Ledger:     inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: true}, nil, nil),
		Quotes:     store.Quotes(),
		Deliveries: store.Deliveries(),
		Parts:      store.Parts(),
		Sellers:    sellers,
		Counter:    kv.NewDocumentCounter(kvStore, 999),
	}, quote.Policy{})
	return delivery.NewUseCase(store.Deliveries(), quotes, nil), quotes, store
}

func approve(t *testing.T, quotes *quote.UseCase, qty int) *dto.ApproveQuoteResponse {
	t.Helper()
	ctx := context.Background()
	q, err := quotes.Create(ctx, dto.QuoteRequest{
		Client:   "Cliente",
		Items:    []dto.LineItemRequest{{ID: "p1", WarehouseID: "1", Quantity: qty}},
		SellerID: "s1",
	})
	require.NoError(t, err)
	res, err := quotes.Approve(ctx, q.ID, "u1")
	require.NoError(t, err)
	return res
}

func TestReturnToStock_UnaSolaVez(t *testing.T) {
	uc, quotes, store := setup(t)
	ctx := context.Background()
	res := approve(t, quotes, 4)

	got, err := uc.ReturnToStock(ctx, res.Delivery.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "devuelta", got.Status)

	p, err := store.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	_, err = uc.ReturnToStock(ctx, res.Delivery.ID, "u1")
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestList_FiltraPorEstado(t *testing.T) {
	uc, quotes, _ := setup(t)
	ctx := context.Background()
	first := approve(t, quotes, 1)
	approve(t, quotes, 1)
	_, err := uc.ReturnToStock(ctx, first.Delivery.ID, "u1")
	require.NoError(t, err)

	returned, err := uc.List(ctx, delivery.ListQuery{Status: "devuelta"})
	require.NoError(t, err)
	require.Len(t, returned, 1)
	assert.Equal(t, first.Delivery.ID, returned[0].ID)

	all, err := uc.List(ctx, delivery.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete_NoTocaStock(t *testing.T) {
	uc, quotes, store := setup(t)
	ctx := context.Background()
	res := approve(t, quotes, 3)

	require.NoError(t, uc.Delete(ctx, res.Delivery.ID))
	p, err := store.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)

	_, err = uc.GetByID(ctx, res.Delivery.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Delete(ctx, res.Delivery.ID), domain.ErrNotFound))
}
