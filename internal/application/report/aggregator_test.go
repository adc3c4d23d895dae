package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/report"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/kv"
	"github.com/jhoicas/repuestos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(dto.DateLayout, s)
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	filtro = entity.LineItem{ID: "1", PartNumber: "ABC-123", Name: "Filtro de Aceite", WarehouseID: "1",
		Quantity: 2, Price: dec("25.50"), Cost: dec("15")}
	bateria = entity.LineItem{ID: "4", PartNumber: "GHI-012", Name: "Batería 12V", WarehouseID: "2",
		Quantity: 1, Price: dec("150"), Cost: dec("90")}
	servicio = entity.LineItem{ID: "manual-x", PartNumber: "N/A", Name: "Instalación", WarehouseID: "N/A",
		Quantity: 1, Price: dec("40"), IsService: true}
)

func catalog() report.Catalog {
	return report.NewCatalog(
		[]*entity.Part{
			{ID: "1", PartNumber: "ABC-123", Cost: dec("16"), WarehouseID: "1"},
			{ID: "4", PartNumber: "GHI-012", Cost: dec("90"), WarehouseID: "2"},
		},
		memory.DefaultWarehouses(),
		[]*entity.Seller{{ID: "s2", Name: "Pedro"}, {ID: "s1", Name: "Ana"}},
	)
}

func deliveries() []*entity.Delivery {
	returned := day("2024-03-20")
	return []*entity.Delivery{
		{ID: "d1", QuoteID: 1000, Client: entity.ClientInfo{Name: "Transportes Álvarez"}, Date: day("2024-03-01"),
			Items: []entity.LineItem{filtro, servicio}, Currency: "usd", Status: entity.DeliveryStatusActive},
		{ID: "d2", QuoteID: 1001, Client: entity.ClientInfo{Name: "Fletes del Sur"}, Date: day("2024-03-15"),
			Items: []entity.LineItem{bateria}, Currency: "ves", Status: entity.DeliveryStatusReturned, ReturnedAt: &returned},
	}
}

func TestFilter_FechasInclusivasYCliente(t *testing.T) {
	f, err := report.ParseFilter(dto.ReportQuery{StartDate: "2024-03-01", EndDate: "2024-03-01"})
	require.NoError(t, err)
	got := report.Deliveries(deliveries(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)

	f, err = report.ParseFilter(dto.ReportQuery{Client: "ÁLVAREZ"})
	require.NoError(t, err)
	got = report.Deliveries(deliveries(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)

	_, err = report.ParseFilter(dto.ReportQuery{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSalesByWarehouse_SinServicios(t *testing.T) {
	rep := report.SalesByWarehouse(deliveries(), catalog(), report.Filter{WarehouseID: "all"})
	require.Len(t, rep.Items, 2)
	assert.Equal(t, 3, rep.ItemsSold)
	assert.True(t, dec("201").Equal(rep.TotalSales), "total: %s", rep.TotalSales)
	assert.Equal(t, "Almacén Principal", rep.Items[0].WarehouseName)
	assert.True(t, dec("16").Equal(rep.Items[0].Cost), "usa el costo actual del repuesto")

	rep = report.SalesByWarehouse(deliveries(), catalog(), report.Filter{WarehouseID: "2"})
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "GHI-012", rep.Items[0].PartNumber)
}

func TestDetailedSales_GananciaEsTotalMenosCosto(t *testing.T) {
	rep := report.DetailedSales(deliveries(), catalog(), report.Filter{})
	require.Len(t, rep.Deliveries, 2)

	d1 := rep.Deliveries[0]
	assert.True(t, dec("91").Equal(d1.Total))
	assert.True(t, dec("32").Equal(d1.Cost), "el servicio no suma costo")
	assert.True(t, dec("59").Equal(d1.Profit))

	assert.True(t, dec("241").Equal(rep.TotalSales))
	assert.True(t, dec("122").Equal(rep.TotalCost))
	assert.True(t, dec("119").Equal(rep.TotalProfit))
}

func TestSalesBySeller_SoloAprobadas(t *testing.T) {
	quotes := []*entity.Quote{
		{ID: 1000, SellerID: "s1", Status: entity.QuoteStatusApproved, Date: day("2024-03-01"), Items: []entity.LineItem{filtro}},
		{ID: 1001, SellerID: "s1", Status: entity.QuoteStatusPending, Date: day("2024-03-02"), Items: []entity.LineItem{bateria}},
		{ID: 1002, SellerID: "borrado", Status: entity.QuoteStatusApproved, Date: day("2024-03-02"), Items: []entity.LineItem{bateria}},
	}
	rows := report.SalesBySeller(quotes, catalog(), report.Filter{})
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0].Name)
	assert.Equal(t, 1, rows[0].QuotesCount)
	assert.True(t, dec("51").Equal(rows[0].TotalSales))
	assert.True(t, dec("19").Equal(rows[0].TotalProfit))
	assert.Equal(t, "Pedro", rows[1].Name)
	assert.Equal(t, 0, rows[1].QuotesCount)
}

func TestReturns_SoloDevueltas(t *testing.T) {
	got := report.Returns(deliveries(), report.Filter{})
	require.Len(t, got, 1)
	assert.Equal(t, "d2", got[0].ID)
}

func TestReturns_FiltraPorFechaDeLaEntrega(t *testing.T) {
	// d2 se entregó el 15 y se devolvió el 20: cuenta por la fecha de entrega.
	f, err := report.ParseFilter(dto.ReportQuery{StartDate: "2024-03-15", EndDate: "2024-03-15"})
	require.NoError(t, err)
	got := report.Returns(deliveries(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "d2", got[0].ID)

	f, err = report.ParseFilter(dto.ReportQuery{StartDate: "2024-03-20", EndDate: "2024-03-20"})
	require.NoError(t, err)
	assert.Empty(t, report.Returns(deliveries(), f))
}

func newUseCase(t *testing.T) (*report.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedWarehouses(memory.DefaultWarehouses()...)
	sellers := kv.NewSellerRepository(kv.NewMemoryStore(), kv.NewLocalLocker())
	require.NoError(t, sellers.Create(context.Background(), &entity.Seller{ID: "s1", Name: "Ana"}))
	uc := report.NewUseCase(store.Quotes(), store.Deliveries(), store.Parts(), store.Warehouses(), sellers, nil)
	return uc, store
}

func TestExport_SinDatos(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Export(context.Background(), report.KindReturns, dto.ReportQuery{})
	assert.True(t, errors.Is(err, domain.ErrNoData))

	_, err = uc.Export(context.Background(), "inventado", dto.ReportQuery{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestExport_CSVCotizacionesAprobadas(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	require.NoError(t, store.Quotes().Create(ctx, &entity.Quote{
		ID: 1000, Client: entity.ClientInfo{Name: `Taller "Central"`, RIF: "J-1"}, Date: day("2024-03-01"),
		Items: []entity.LineItem{filtro, servicio}, PaymentMethod: "contado", Currency: "usd",
		SellerID: "s1", Status: entity.QuoteStatusApproved,
	}))

	file, err := uc.Export(ctx, report.KindApprovedQuotes, dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Cotizaciones_Aprobadas.csv", file.Name)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `"ID Cotización","Cliente","RIF"`))
	assert.Equal(t,
		`1000,"Taller ""Central""","J-1","","","2024-03-01","contado","Ana","$",91.00,`+
			`"Filtro de Aceite (2 unid. de Almacén Principal); Instalación (1 unid. de Servicio)"`,
		lines[1])

	xlsx, err := uc.Export(ctx, report.KindApprovedQuotes, dto.ReportQuery{Format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Cotizaciones_Aprobadas.xlsx", xlsx.Name)
	assert.NotEmpty(t, xlsx.Data)
}
