package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/report"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// ReportHandler expone los reportes de ventas en JSON, CSV y XLSX (protegido).
type ReportHandler struct {
	uc  *report.UseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// reportQuery lee y valida los filtros comunes.
func reportQuery(c *fiber.Ctx) (dto.ReportQuery, error) {
	var q dto.ReportQuery
	err := parseQuery(c, &q)
	return q, err
}

// respond envía el resultado del reporte o el error mapeado.
func (h *ReportHandler) respond(c *fiber.Ctx, out any, err error) error {
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ApprovedQuotes godoc
// @Summary      Cotizaciones aprobadas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        client     query  string  false  "Nombre del cliente (contiene)"
// @Success      200  {array}  dto.QuoteResponse
// @Router       /api/reports/approved-quotes [get]
func (h *ReportHandler) ApprovedQuotes(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.ApprovedQuotes(c.Context(), q)
	return h.respond(c, out, err)
}

// Deliveries godoc
// @Summary      Salidas de inventario (notas de entrega)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        client     query  string  false  "Nombre del cliente (contiene)"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/reports/deliveries [get]
func (h *ReportHandler) Deliveries(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Deliveries(c.Context(), q)
	return h.respond(c, out, err)
}

// Returns godoc
// @Summary      Devoluciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/reports/returns [get]
func (h *ReportHandler) Returns(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Returns(c.Context(), q)
	return h.respond(c, out, err)
}

// SalesByWarehouse godoc
// @Summary      Ventas por almacén
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  string  false  "all o ID de bodega"
// @Success      200  {object}  dto.SalesByWarehouseReport
// @Router       /api/reports/sales-by-warehouse [get]
func (h *ReportHandler) SalesByWarehouse(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.SalesByWarehouse(c.Context(), q)
	return h.respond(c, out, err)
}

// DetailedSales godoc
// @Summary      Ventas detalladas con costo y ganancia
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DetailedSalesReport
// @Router       /api/reports/detailed-sales [get]
func (h *ReportHandler) DetailedSales(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.DetailedSales(c.Context(), q)
	return h.respond(c, out, err)
}

// SalesBySeller godoc
// @Summary      Ventas por vendedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SellerSalesRow
// @Router       /api/reports/sales-by-seller [get]
func (h *ReportHandler) SalesBySeller(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.SalesBySeller(c.Context(), q)
	return h.respond(c, out, err)
}

// Export godoc
// @Summary      Exportar un reporte
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        report  path   string  true   "approved-quotes | deliveries | sales-by-warehouse | detailed-sales | sales-by-seller | returns"
// @Param        format  query  string  false  "csv | xlsx"  default(csv)
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{report}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	file, err := h.uc.Export(c.Context(), c.Params("report"), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, file.ContentType, file.Name, file.Data)
}
