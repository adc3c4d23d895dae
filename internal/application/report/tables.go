package report

import (
	"fmt"
	"strings"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/pkg/export"
)

// articles resume las líneas como "nombre (N unid. de Bodega)" separadas por "; ".
func articles(items []entity.LineItem, cat Catalog) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		origin := "Servicio"
		if !it.IsService {
			origin = cat.WarehouseName(it.WarehouseID)
		}
		parts = append(parts, fmt.Sprintf("%s (%d unid. de %s)", it.Name, it.Quantity, origin))
	}
	return strings.Join(parts, "; ")
}

func approvedQuotesTable(quotes []*entity.Quote, cat Catalog) *export.Table {
	t := &export.Table{
		Sheet: "Cotizaciones Aprobadas",
		Headers: []string{"ID Cotización", "Cliente", "RIF", "Teléfono", "Dirección", "Fecha",
			"Método de Pago", "Vendedor", "Moneda", "Total", "Artículos"},
	}
	for _, q := range quotes {
		t.Append(q.ID, q.Client.Name, q.Client.RIF, q.Client.Phone, q.Client.Address,
			q.Date.Format(dto.DateLayout), q.PaymentMethod, cat.SellerName(q.SellerID),
			entity.CurrencySymbol(q.Currency), q.Total(), articles(q.Items, cat))
	}
	return t
}

func deliveriesTable(deliveries []*entity.Delivery, cat Catalog) *export.Table {
	t := &export.Table{
		Sheet: "Salidas de Inventario",
		Headers: []string{"ID Salida de Inventario", "ID Cotización", "Cliente", "RIF", "Teléfono", "Dirección",
			"Fecha", "Estado", "Moneda", "Total", "Artículos"},
	}
	for _, d := range deliveries {
		t.Append(d.ID, d.QuoteID, d.Client.Name, d.Client.RIF, d.Client.Phone, d.Client.Address,
			d.Date.Format(dto.DateLayout), string(d.Status), entity.CurrencySymbol(d.Currency), d.Total(),
			articles(d.Items, cat))
	}
	return t
}

func salesByWarehouseTable(rep dto.SalesByWarehouseReport) *export.Table {
	t := &export.Table{
		Sheet: "Ventas por Almacén",
		Headers: []string{"N° Salida de Inventario", "Fecha Entrega", "Código", "Descripción", "Almacén",
			"Cantidad", "Precio Unitario", "Costo Unitario", "Total Artículo", "Moneda"},
	}
	for _, r := range rep.Items {
		t.Append(r.DeliveryID, r.DeliveryDate, r.PartNumber, r.Name, r.WarehouseName,
			r.Quantity, r.Price, r.Cost, r.Total, entity.CurrencySymbol(r.Currency))
	}
	return t
}

func detailedSalesTable(rep dto.DetailedSalesReport) *export.Table {
	t := &export.Table{
		Sheet: "Ventas Detallado",
		Headers: []string{"N° Salida de Inventario", "Cliente", "Fecha Entrega", "Código Artículo",
			"Descripción Artículo", "Cantidad", "Precio Venta Unitario", "Costo Unitario", "Total Venta Artículo",
			"Costo Total Artículo", "Ganancia Artículo", "Moneda", "Tipo"},
	}
	for _, d := range rep.Deliveries {
		symbol := entity.CurrencySymbol(d.Currency)
		for _, it := range d.Items {
			kind := "Producto"
			if it.IsService {
				kind = "Servicio"
			}
			t.Append(d.DeliveryID, d.Client, d.Date, it.PartNumber, it.Name, it.Quantity, it.Price,
				it.UnitCost, it.Total, it.Cost, it.Profit, symbol, kind)
		}
	}
	if len(t.Rows) == 0 {
		return t
	}
	t.Append()
	t.Append("Totales del Reporte", nil, nil, nil, nil, nil, nil, nil,
		rep.TotalSales, rep.TotalCost, rep.TotalProfit, "$", nil)
	return t
}

func salesBySellerTable(rows []dto.SellerSalesRow) *export.Table {
	t := &export.Table{
		Sheet:   "Ventas por Vendedor",
		Headers: []string{"Vendedor", "Total Ventas", "Total Costo", "Ganancia Total", "Número de Cotizaciones Aprobadas"},
	}
	for _, r := range rows {
		t.Append(r.Name, r.TotalSales, r.TotalCost, r.TotalProfit, r.QuotesCount)
	}
	return t
}

func returnsTable(deliveries []*entity.Delivery, cat Catalog) *export.Table {
	t := &export.Table{
		Sheet: "Devoluciones",
		Headers: []string{"ID Cotización Aprobada", "Cliente", "RIF", "Teléfono", "Dirección", "Fecha Devolución",
			"Moneda", "Total Original", "Artículos Devueltos"},
	}
	for _, d := range deliveries {
		returned := d.Date.Format(dto.DateLayout)
		if d.ReturnedAt != nil {
			returned = d.ReturnedAt.Format(dto.DateLayout)
		}
		t.Append(d.QuoteID, d.Client.Name, d.Client.RIF, d.Client.Phone, d.Client.Address, returned,
			entity.CurrencySymbol(d.Currency), d.Total(), articles(d.Items, cat))
	}
	return t
}
