package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/usecase"
	"github.com/jhoicas/repuestos-api/pkg/export"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// PartHandler maneja las peticiones HTTP del inventario de repuestos (protegido).
type PartHandler struct {
	uc            *usecase.PartUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *usecase.PartUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *PartHandler {
	return &PartHandler{uc: uc, replenishment: replenishment, log: log}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Datos del repuesto"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar repuestos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "N° de parte, nombre, marca o modelo compatible"
// @Param        warehouseId  query  string  false  "Bodega"
// @Success      200  {array}  dto.PartResponse
// @Router       /api/products [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	var q dto.PartListQuery
	if err := parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar repuesto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del repuesto"
// @Param        body  body  dto.UpdatePartRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar repuesto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del repuesto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Movimientos de stock del repuesto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del repuesto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *PartHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 100 {
		page.Limit = 100
	}
	page.DefaultPage()
	out, err := h.uc.Movements(c.Context(), c.Params("id"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Repuestos en o bajo el stock mínimo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  string  false  "Bodega"
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/products/low-stock [get]
func (h *PartHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStock(c.Context(), c.Query("warehouseId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportExcel godoc
// @Summary      Exportar inventario a Excel
// @Tags         products
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search       query  string  false  "Filtro de búsqueda"
// @Param        warehouseId  query  string  false  "Bodega"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/export/excel [get]
func (h *PartHandler) ExportExcel(c *fiber.Ctx) error {
	var q dto.PartListQuery
	if err := parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}
	data, err := h.uc.ExportExcel(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	name := "Inventario_" + time.Now().Format(dto.DateLayout) + ".xlsx"
	return sendFile(c, export.ContentTypeXLSX, name, data)
}

// sendFile responde un adjunto descargable.
func sendFile(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
