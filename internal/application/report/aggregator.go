package report

import (
	"sort"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Catalog datos de referencia para resolver costos y nombres al agregar.
type Catalog struct {
	Parts      map[string]*entity.Part
	Warehouses map[string]string
	Sellers    []*entity.Seller
}

// NewCatalog indexa repuestos y bodegas.
func NewCatalog(parts []*entity.Part, warehouses []*entity.Warehouse, sellers []*entity.Seller) Catalog {
	c := Catalog{
		Parts:      make(map[string]*entity.Part, len(parts)),
		Warehouses: make(map[string]string, len(warehouses)),
		Sellers:    sellers,
	}
	for _, p := range parts {
		c.Parts[p.ID] = p
	}
	for _, w := range warehouses {
		c.Warehouses[w.ID] = w.Name
	}
	return c
}

// UnitCost costo unitario de la línea: el costo actual del repuesto si existe, si no el
// costo copiado en la línea. Los servicios no tienen costo.
func (c Catalog) UnitCost(it entity.LineItem) decimal.Decimal {
	if it.IsService {
		return decimal.Zero
	}
	if p, ok := c.Parts[it.ID]; ok {
		return p.Cost
	}
	return it.Cost
}

// PartNumber número de parte actual de la línea; N/A para servicios o repuestos eliminados.
func (c Catalog) PartNumber(it entity.LineItem) string {
	if it.IsService {
		return entity.NotApplicable
	}
	if p, ok := c.Parts[it.ID]; ok {
		return p.PartNumber
	}
	if it.PartNumber != "" {
		return it.PartNumber
	}
	return entity.NotApplicable
}

// WarehouseName nombre de la bodega o N/A.
func (c Catalog) WarehouseName(id string) string {
	if name, ok := c.Warehouses[id]; ok {
		return name
	}
	return entity.NotApplicable
}

// SellerName nombre del vendedor o N/A.
func (c Catalog) SellerName(id string) string {
	for _, s := range c.Sellers {
		if s.ID == id {
			return s.Name
		}
	}
	return entity.NotApplicable
}

func (c Catalog) costOf(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(c.UnitCost(it).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ApprovedQuotes cotizaciones aprobadas que cumplen el filtro.
func ApprovedQuotes(quotes []*entity.Quote, f Filter) []*entity.Quote {
	var out []*entity.Quote
	for _, q := range quotes {
		if q.Status == entity.QuoteStatusApproved && f.matches(q.Date, q.Client.Name) {
			out = append(out, q)
		}
	}
	return out
}

// Deliveries entregas (activas y devueltas) que cumplen el filtro.
func Deliveries(deliveries []*entity.Delivery, f Filter) []*entity.Delivery {
	var out []*entity.Delivery
	for _, d := range deliveries {
		if f.matches(d.Date, d.Client.Name) {
			out = append(out, d)
		}
	}
	return out
}

// Returns entregas devueltas al inventario que cumplen el filtro. El rango de fechas
// se aplica a la fecha de la entrega, igual que en el resto de reportes.
func Returns(deliveries []*entity.Delivery, f Filter) []*entity.Delivery {
	var out []*entity.Delivery
	for _, d := range Deliveries(deliveries, f) {
		if d.IsReturned() {
			out = append(out, d)
		}
	}
	return out
}

// SalesByWarehouse detalle de repuestos vendidos (sin servicios) por bodega.
func SalesByWarehouse(deliveries []*entity.Delivery, cat Catalog, f Filter) dto.SalesByWarehouseReport {
	rep := dto.SalesByWarehouseReport{
		WarehouseID: f.WarehouseID,
		Items:       []dto.WarehouseSaleRow{},
		TotalSales:  decimal.Zero,
	}
	if rep.WarehouseID == "" {
		rep.WarehouseID = AllWarehouses
	}
	for _, d := range Deliveries(deliveries, f) {
		for _, it := range d.Items {
			if it.IsService || !f.matchesWarehouse(it.WarehouseID) {
				continue
			}
			unitCost := cat.UnitCost(it)
			total := it.Total()
			rep.Items = append(rep.Items, dto.WarehouseSaleRow{
				DeliveryID:    d.ID,
				QuoteID:       d.QuoteID,
				DeliveryDate:  d.Date.Format(dto.DateLayout),
				Client:        d.Client.Name,
				PartID:        it.ID,
				PartNumber:    cat.PartNumber(it),
				Name:          it.Name,
				WarehouseID:   it.WarehouseID,
				WarehouseName: cat.WarehouseName(it.WarehouseID),
				Quantity:      it.Quantity,
				Price:         it.Price,
				Cost:          unitCost,
				Total:         total,
				Profit:        total.Sub(unitCost.Mul(decimal.NewFromInt(int64(it.Quantity)))),
				Currency:      d.Currency,
			})
			rep.ItemsSold += it.Quantity
			rep.TotalSales = rep.TotalSales.Add(total)
		}
	}
	return rep
}

// DetailedSales ventas por entrega con costo y ganancia (total − costo).
func DetailedSales(deliveries []*entity.Delivery, cat Catalog, f Filter) dto.DetailedSalesReport {
	rep := dto.DetailedSalesReport{
		Deliveries:  []dto.DetailedSaleRow{},
		TotalSales:  decimal.Zero,
		TotalCost:   decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	for _, d := range Deliveries(deliveries, f) {
		row := dto.DetailedSaleRow{
			DeliveryID: d.ID,
			QuoteID:    d.QuoteID,
			Client:     d.Client.Name,
			Date:       d.Date.Format(dto.DateLayout),
			Currency:   d.Currency,
			Items:      make([]dto.DetailedSaleItem, 0, len(d.Items)),
			Total:      decimal.Zero,
			Cost:       decimal.Zero,
		}
		for _, it := range d.Items {
			unitCost := cat.UnitCost(it)
			total := it.Total()
			cost := unitCost.Mul(decimal.NewFromInt(int64(it.Quantity)))
			row.Items = append(row.Items, dto.DetailedSaleItem{
				PartNumber: cat.PartNumber(it),
				Name:       it.Name,
				Quantity:   it.Quantity,
				Price:      it.Price,
				UnitCost:   unitCost,
				Total:      total,
				Cost:       cost,
				Profit:     total.Sub(cost),
				IsService:  it.IsService,
			})
			row.Total = row.Total.Add(total)
			row.Cost = row.Cost.Add(cost)
		}
		row.Profit = row.Total.Sub(row.Cost)
		rep.Deliveries = append(rep.Deliveries, row)
		rep.TotalSales = rep.TotalSales.Add(row.Total)
		rep.TotalCost = rep.TotalCost.Add(row.Cost)
	}
	rep.TotalProfit = rep.TotalSales.Sub(rep.TotalCost)
	return rep
}

// SalesBySeller totales por vendedor sobre cotizaciones aprobadas. Incluye a todos los
// vendedores registrados aunque no tengan ventas; las cotizaciones de vendedores eliminados se ignoran.
func SalesBySeller(quotes []*entity.Quote, cat Catalog, f Filter) []dto.SellerSalesRow {
	rows := make([]dto.SellerSalesRow, 0, len(cat.Sellers))
	index := make(map[string]int, len(cat.Sellers))
	for _, s := range cat.Sellers {
		index[s.ID] = len(rows)
		rows = append(rows, dto.SellerSalesRow{
			SellerID:    s.ID,
			Name:        s.Name,
			TotalSales:  decimal.Zero,
			TotalCost:   decimal.Zero,
			TotalProfit: decimal.Zero,
		})
	}
	for _, q := range ApprovedQuotes(quotes, f) {
		i, ok := index[q.SellerID]
		if !ok {
			continue
		}
		total := q.Total()
		cost := cat.costOf(q.Items)
		rows[i].QuotesCount++
		rows[i].TotalSales = rows[i].TotalSales.Add(total)
		rows[i].TotalCost = rows[i].TotalCost.Add(cost)
		rows[i].TotalProfit = rows[i].TotalProfit.Add(total.Sub(cost))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
