package report

import (
	"bytes"
	"context"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/pkg/export"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// Tipos de reporte exportables.
const (
	KindApprovedQuotes   = "approved-quotes"
	KindDeliveries       = "deliveries"
	KindSalesByWarehouse = "sales-by-warehouse"
	KindDetailedSales    = "detailed-sales"
	KindSalesBySeller    = "sales-by-seller"
	KindReturns          = "returns"
)

var fileNames = map[string]string{
	KindApprovedQuotes:   "Reporte_Cotizaciones_Aprobadas",
	KindDeliveries:       "Reporte_Salidas_Inventario",
	KindSalesByWarehouse: "Reporte_Ventas_Detalle_Por_Almacen",
	KindDetailedSales:    "Reporte_Ventas_Detallado",
	KindSalesBySeller:    "Reporte_Ventas_Por_Vendedor",
	KindReturns:          "Reporte_Devoluciones",
}

// File archivo exportado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase reportes de ventas, costos y devoluciones. Solo lectura; todo se recalcula en cada consulta.
type UseCase struct {
	quotes     repository.QuoteRepository
	deliveries repository.DeliveryRepository
	parts      repository.PartRepository
	warehouses repository.WarehouseRepository
	sellers    repository.SellerRepository
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	quotes repository.QuoteRepository,
	deliveries repository.DeliveryRepository,
	parts repository.PartRepository,
	warehouses repository.WarehouseRepository,
	sellers repository.SellerRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		quotes:     quotes,
		deliveries: deliveries,
		parts:      parts,
		warehouses: warehouses,
		sellers:    sellers,
		log:        log.Component("reports"),
	}
}

// ApprovedQuotes listado de cotizaciones aprobadas.
func (uc *UseCase) ApprovedQuotes(ctx context.Context, q dto.ReportQuery) ([]dto.QuoteResponse, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	quotes, err := uc.quotes.List(ctx, repository.QuoteFilter{Status: entity.QuoteStatusApproved})
	if err != nil {
		return nil, err
	}
	out := []dto.QuoteResponse{}
	for _, x := range ApprovedQuotes(quotes, f) {
		out = append(out, *dto.FromQuote(x))
	}
	return out, nil
}

// Deliveries listado de entregas.
func (uc *UseCase) Deliveries(ctx context.Context, q dto.ReportQuery) ([]dto.DeliveryResponse, error) {
	return uc.deliveryList(ctx, q, Deliveries)
}

// Returns listado de entregas devueltas.
func (uc *UseCase) Returns(ctx context.Context, q dto.ReportQuery) ([]dto.DeliveryResponse, error) {
	return uc.deliveryList(ctx, q, Returns)
}

func (uc *UseCase) deliveryList(
	ctx context.Context,
	q dto.ReportQuery,
	pick func([]*entity.Delivery, Filter) []*entity.Delivery,
) ([]dto.DeliveryResponse, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.DeliveryResponse{}
	for _, d := range pick(list, f) {
		out = append(out, *dto.FromDelivery(d))
	}
	return out, nil
}

// SalesByWarehouse detalle de ventas por bodega.
func (uc *UseCase) SalesByWarehouse(ctx context.Context, q dto.ReportQuery) (*dto.SalesByWarehouseReport, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	rep := SalesByWarehouse(list, cat, f)
	return &rep, nil
}

// DetailedSales ventas con costo y ganancia.
func (uc *UseCase) DetailedSales(ctx context.Context, q dto.ReportQuery) (*dto.DetailedSalesReport, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	rep := DetailedSales(list, cat, f)
	return &rep, nil
}

// SalesBySeller totales por vendedor.
func (uc *UseCase) SalesBySeller(ctx context.Context, q dto.ReportQuery) ([]dto.SellerSalesRow, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	quotes, err := uc.quotes.List(ctx, repository.QuoteFilter{Status: entity.QuoteStatusApproved})
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return SalesBySeller(quotes, cat, f), nil
}

// Export genera el reporte indicado en CSV (por defecto) o XLSX.
func (uc *UseCase) Export(ctx context.Context, kind string, q dto.ReportQuery) (*File, error) {
	name, ok := fileNames[kind]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	table, err := uc.table(ctx, kind, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	file := &File{}
	switch q.Format {
	case "xlsx":
		err = export.WriteXLSX(&buf, table)
		file.Name = name + ".xlsx"
		file.ContentType = export.ContentTypeXLSX
	default:
		err = export.WriteCSV(&buf, table)
		file.Name = name + ".csv"
		file.ContentType = export.ContentTypeCSV
	}
	if err != nil {
		return nil, err
	}
	file.Data = buf.Bytes()
	uc.log.Info().Str("report", kind).Str("file", file.Name).Int("rows", len(table.Rows)).Msg("reporte exportado")
	return file, nil
}

func (uc *UseCase) table(ctx context.Context, kind string, f Filter) (*export.Table, error) {
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindApprovedQuotes, KindSalesBySeller:
		quotes, err := uc.quotes.List(ctx, repository.QuoteFilter{Status: entity.QuoteStatusApproved})
		if err != nil {
			return nil, err
		}
		if kind == KindSalesBySeller {
			return salesBySellerTable(SalesBySeller(quotes, cat, f)), nil
		}
		return approvedQuotesTable(ApprovedQuotes(quotes, f), cat), nil
	}

	list, err := uc.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindDeliveries:
		return deliveriesTable(Deliveries(list, f), cat), nil
	case KindSalesByWarehouse:
		return salesByWarehouseTable(SalesByWarehouse(list, cat, f)), nil
	case KindDetailedSales:
		return detailedSalesTable(DetailedSales(list, cat, f)), nil
	default:
		return returnsTable(Returns(list, f), cat), nil
	}
}

func (uc *UseCase) catalog(ctx context.Context) (Catalog, error) {
	parts, err := uc.parts.List(ctx, repository.PartFilter{})
	if err != nil {
		return Catalog{}, err
	}
	warehouses, err := uc.warehouses.List(ctx)
	if err != nil {
		return Catalog{}, err
	}
	sellers, err := uc.sellers.List(ctx)
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(parts, warehouses, sellers), nil
}
