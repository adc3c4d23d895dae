package quote_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

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

const sellerID = "s1"

type fixture struct {
	uc    *quote.UseCase
	store *memory.Store
}

func newFixture(t *testing.T, policy quote.Policy, strict bool) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	now := time.Now()
	store.SeedParts(
		&entity.Part{ID: "p1", PartNumber: "ABC-123", Name: "Filtro de Aceite", Price: decimal.RequireFromString("25.50"),
			Cost: decimal.NewFromInt(15), Stock: 10, MinStock: 2, WarehouseID: "1", CreatedAt: now, UpdatedAt: now},
		&entity.Part{ID: "p2", PartNumber: "XYZ-456", Name: "Pastillas de Freno", Price: decimal.NewFromInt(120),
			Cost: decimal.NewFromInt(70), Stock: 5, MinStock: 1, WarehouseID: "2", CreatedAt: now, UpdatedAt: now},
	)

	kvStore := kv.NewMemoryStore()
	locker := kv.NewLocalLocker()
	sellers := kv.NewSellerRepository(kvStore, locker)
	require.NoError(t, sellers.Create(ctx, &entity.Seller{ID: sellerID, Name: "Ana", CreatedAt: now}))

	ledger := inventory.NewLedger(store, inventory.LedgerConfig{StrictLookup: strict}, nil, nil)
	uc := quote.NewUseCase(quote.Deps{
		TxRunner:   store,
		Ledger:     ledger,
		Quotes:     store.Quotes(),
		Deliveries: store.Deliveries(),
		Parts:      store.Parts(),
		Sellers:    sellers,
		Counter:    kv.NewDocumentCounter(kvStore, 999),
		Locker:     locker,
	}, policy)
	return &fixture{uc: uc, store: store}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Parts().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func partLine(id, wh string, qty int) dto.LineItemRequest {
	return dto.LineItemRequest{ID: id, WarehouseID: wh, Quantity: qty}
}

func serviceLine(name string, qty int, price string) dto.LineItemRequest {
	p := decimal.RequireFromString(price)
	return dto.LineItemRequest{Name: name, Quantity: qty, Price: &p, IsService: true}
}

func request(items ...dto.LineItemRequest) dto.QuoteRequest {
	return dto.QuoteRequest{
		Client:   "Transportes El Llano",
		RIF:      "J-12345678-9",
		Date:     "2024-03-15",
		Items:    items,
		SellerID: sellerID,
	}
}

func TestCreate_PrimeraCotizacionYTotalRecalculado(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3), serviceLine("Mano de obra", 1, "100")))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), q.ID)
	assert.Equal(t, "pendiente", q.Status)
	assert.Equal(t, "contado", q.PaymentMethod)
	assert.Equal(t, "usd", q.Currency)
	assert.True(t, decimal.RequireFromString("176.50").Equal(q.Total), "total: %s", q.Total)
	require.Len(t, q.Items, 2)
	assert.Equal(t, "ABC-123", q.Items[0].PartNumber)
	assert.Equal(t, "N/A", q.Items[1].PartNumber)
	assert.Equal(t, "N/A", q.Items[1].WarehouseID)
	assert.Contains(t, q.Items[1].ID, "manual-")
	assert.Equal(t, 10, f.stock(t, "p1"), "crear no toca el stock")
}

func TestCreate_SinItemsNoConsumeNumero(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, request())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, quote.MsgNoItems, err.Error())

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), q.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	noSeller := request(partLine("p1", "1", 1))
	noSeller.SellerID = ""
	_, err := f.uc.Create(ctx, noSeller)
	assert.EqualError(t, err, quote.MsgNoSeller)

	_, err = f.uc.Create(ctx, request(serviceLine("", 1, "10")))
	assert.EqualError(t, err, quote.MsgManualNoName)

	_, err = f.uc.Create(ctx, request(serviceLine("Diagnóstico", 1, "0")))
	assert.EqualError(t, err, quote.MsgInvalidPrice)

	_, err = f.uc.Create(ctx, request(partLine("p1", "1", 0)))
	assert.EqualError(t, err, quote.MsgInvalidQuantity)

	_, err = f.uc.Create(ctx, request(partLine("p1", "2", 1)))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "repuesto en otra bodega")

	bad := request(partLine("p1", "1", 1))
	bad.Currency = "cop"
	_, err = f.uc.Create(ctx, bad)
	assert.EqualError(t, err, quote.MsgUnknownCurrency)
}

func TestCreate_StockInsuficienteYLineasUnidas(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, request(partLine("p1", "1", 6), partLine("p1", "1", 5)))
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Requested)

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 2), partLine("p1", "1", 3)))
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 5, q.Items[0].Quantity)
}

func TestCreate_CantidadExcesivaNoConsumeNumero(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, request(partLine("p1", "1", math.MaxInt), partLine("p1", "1", 3)))
	assert.EqualError(t, err, quote.MsgQuantityTooBig)

	_, err = f.uc.Create(ctx, request(partLine("p1", "1", quote.MaxLineQuantity), partLine("p1", "1", 1)))
	assert.EqualError(t, err, quote.MsgQuantityTooBig, "la suma de líneas unidas también se acota")

	_, err = f.uc.Create(ctx, request(serviceLine("Diagnóstico", math.MaxInt, "10")))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 2)))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), q.ID)
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestAprobarYDevolver_RestauraStock(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3), serviceLine("Instalación", 1, "40")))
	require.NoError(t, err)

	res, err := f.uc.Approve(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "aprobada", res.Quote.Status)
	assert.Equal(t, "active", res.Delivery.Status)
	assert.Equal(t, q.ID, res.Delivery.QuoteID)
	assert.True(t, res.Quote.Total.Equal(res.Delivery.Total))
	assert.Equal(t, 7, f.stock(t, "p1"))

	movs, err := f.store.Movements().ListByPart(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, 7, movs[0].StockAfter)

	ret, err := f.uc.Return(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "devuelta", ret.Quote.Status)
	assert.Equal(t, "devuelta", ret.Delivery.Status)
	assert.NotNil(t, ret.Delivery.ReturnedAt)
	assert.Equal(t, 10, f.stock(t, "p1"))

	_, err = f.uc.Return(ctx, q.ID, "u1")
	assert.True(t, errors.Is(err, domain.ErrConflict), "una entrega se devuelve una sola vez")
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestReturnDelivery_PorID(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	q, err := f.uc.Create(ctx, request(partLine("p2", "2", 5)))
	require.NoError(t, err)
	res, err := f.uc.Approve(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "p2"))

	del, err := f.uc.ReturnDelivery(ctx, res.Delivery.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "devuelta", del.Status)
	assert.Equal(t, 5, f.stock(t, "p2"))

	got, err := f.uc.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "devuelta", got.Status)

	_, err = f.uc.ReturnDelivery(ctx, res.Delivery.ID, "u1")
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = f.uc.ReturnDelivery(ctx, "no-existe", "u1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApprove_DobleAprobacion(t *testing.T) {
	t.Run("rechazada por defecto", func(t *testing.T) {
		f := newFixture(t, quote.Policy{}, true)
		ctx := context.Background()
		q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3)))
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx, q.ID, "u1")
		require.NoError(t, err)
		_, err = f.uc.Approve(ctx, q.ID, "u1")
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.Equal(t, 7, f.stock(t, "p1"))
	})

	t.Run("permitida descuenta de nuevo", func(t *testing.T) {
		f := newFixture(t, quote.Policy{AllowReapproval: true}, true)
		ctx := context.Background()
		q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3)))
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx, q.ID, "u1")
		require.NoError(t, err)
		_, err = f.uc.Approve(ctx, q.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, 4, f.stock(t, "p1"))

		list, err := f.store.Deliveries().List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestApprove_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 4), partLine("p2", "2", 3)))
	require.NoError(t, err)
	// otra venta dejó p2 por debajo de lo cotizado
	require.NoError(t, f.store.Run(ctx, func(repos inventory.Repos) error {
		return repos.Parts.UpdateStock(ctx, "p2", "2", 1)
	}))

	_, err = f.uc.Approve(ctx, q.ID, "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 10, f.stock(t, "p1"), "la primera línea no debe quedar aplicada")
	assert.Equal(t, 1, f.stock(t, "p2"))
	got, err := f.uc.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "pendiente", got.Status)
	list, err := f.store.Deliveries().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApprove_RepuestoEliminado(t *testing.T) {
	setup := func(t *testing.T, strict bool) (*fixture, int64) {
		f := newFixture(t, quote.Policy{}, strict)
		ctx := context.Background()
		q, err := f.uc.Create(ctx, request(partLine("p1", "1", 2), partLine("p2", "2", 1)))
		require.NoError(t, err)
		require.NoError(t, f.store.Parts().Delete(ctx, "p2"))
		return f, q.ID
	}

	t.Run("estricto falla", func(t *testing.T) {
		f, id := setup(t, true)
		_, err := f.uc.Approve(context.Background(), id, "u1")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, 10, f.stock(t, "p1"))
	})

	t.Run("permisivo omite la línea", func(t *testing.T) {
		f, id := setup(t, false)
		res, err := f.uc.Approve(context.Background(), id, "u1")
		require.NoError(t, err)
		assert.Equal(t, "aprobada", res.Quote.Status)
		assert.Equal(t, 8, f.stock(t, "p1"))
	})
}

func TestUpdate_SoloPendiente(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	q, err := f.uc.Create(ctx, request(partLine("p1", "1", 1)))
	require.NoError(t, err)

	edit := request(partLine("p1", "1", 2))
	edit.Date = ""
	edit.PaymentMethod = "credito"
	updated, err := f.uc.Update(ctx, q.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", updated.Date, "sin fecha nueva se conserva la original")
	assert.Equal(t, "credito", updated.PaymentMethod)
	assert.True(t, decimal.NewFromInt(51).Equal(updated.Total))

	_, err = f.uc.Approve(ctx, q.ID, "u1")
	require.NoError(t, err)
	_, err = f.uc.Update(ctx, q.ID, edit)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestDelete_PoliticaDeStock(t *testing.T) {
	t.Run("por defecto no repone", func(t *testing.T) {
		f := newFixture(t, quote.Policy{}, true)
		ctx := context.Background()
		q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3)))
		require.NoError(t, err)
		_, err = f.uc.Approve(ctx, q.ID, "u1")
		require.NoError(t, err)

		require.NoError(t, f.uc.Delete(ctx, q.ID, "u1"))
		assert.Equal(t, 7, f.stock(t, "p1"))
		_, err = f.uc.GetByID(ctx, q.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("con reposición", func(t *testing.T) {
		f := newFixture(t, quote.Policy{RestoreStockOnDelete: true}, true)
		ctx := context.Background()
		q, err := f.uc.Create(ctx, request(partLine("p1", "1", 3)))
		require.NoError(t, err)
		res, err := f.uc.Approve(ctx, q.ID, "u1")
		require.NoError(t, err)

		require.NoError(t, f.uc.Delete(ctx, q.ID, "u1"))
		assert.Equal(t, 10, f.stock(t, "p1"))
		del, err := f.store.Deliveries().GetByID(ctx, res.Delivery.ID)
		require.NoError(t, err)
		require.NotNil(t, del)
		assert.True(t, del.IsReturned())
	})

	t.Run("inexistente", func(t *testing.T) {
		f := newFixture(t, quote.Policy{}, true)
		err := f.uc.Delete(context.Background(), 4242, "u1")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t, quote.Policy{}, true)
	ctx := context.Background()

	a, err := f.uc.Create(ctx, request(partLine("p1", "1", 1)))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, request(partLine("p1", "1", 1)))
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, a.ID, "u1")
	require.NoError(t, err)

	pending, err := f.uc.List(ctx, dto.QuoteListQuery{Status: string(entity.QuoteStatusPending)})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1001), pending[0].ID)

	all, err := f.uc.List(ctx, dto.QuoteListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
