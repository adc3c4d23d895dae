package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/delivery"
	"github.com/jhoicas/repuestos-api/internal/application/document"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// DeliveryHandler maneja las notas de entrega (protegido).
type DeliveryHandler struct {
	uc   *delivery.UseCase
	docs *document.UseCase
	log  *logger.Logger
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *delivery.UseCase, docs *document.UseCase, log *logger.Logger) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, docs: docs, log: log}
}

// List godoc
// @Summary      Listar notas de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "active | devuelta"
// @Param        quoteId  query  int     false  "Cotización de origen"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var q delivery.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener nota de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver la entrega al inventario
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/return [post]
func (h *DeliveryHandler) Return(c *fiber.Ctx) error {
	out, err := h.uc.ReturnToStock(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota de entrega (sin efecto en el stock)
// @Tags         deliveries
// @Security     Bearer
// @Param        id   path  string  true  "ID de la entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar nota de entrega en PDF
// @Tags         deliveries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/pdf [get]
func (h *DeliveryHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.docs.DeliveryPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, "application/pdf", name, data)
}
