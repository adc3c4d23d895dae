package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/document"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/quote"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// QuoteHandler maneja cotizaciones y sus transiciones de estado (protegido).
type QuoteHandler struct {
	uc   *quote.UseCase
	docs *document.UseCase
	log  *logger.Logger
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quote.UseCase, docs *document.UseCase, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{uc: uc, docs: docs, log: log}
}

// quoteID lee el id numérico de la ruta.
func quoteID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("El número de cotización no es válido.")
	}
	return id, nil
}

// Create godoc
// @Summary      Crear cotización
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Cliente, vendedor y líneas"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "pendiente | aprobada | devuelta"
// @Param        sellerId  query  string  false  "Vendedor"
// @Success      200  {array}  dto.QuoteResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var q dto.QuoteListQuery
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
// @Summary      Obtener cotización
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Número de cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cotización pendiente
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Número de cotización"
// @Param        body  body  dto.QuoteRequest  true  "Datos nuevos"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [put]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.QuoteRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotes
// @Security     Bearer
// @Param        id   path  int  true  "Número de cotización"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), id, GetUserID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar cotización (descuenta stock y crea la nota de entrega)
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Número de cotización"
// @Success      200  {object}  dto.ApproveQuoteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/approve [post]
func (h *QuoteHandler) Approve(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Approve(c.Context(), id, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver al inventario una cotización aprobada
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Número de cotización"
// @Success      200  {object}  dto.ReturnQuoteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/return [post]
func (h *QuoteHandler) Return(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Return(c.Context(), id, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         quotes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "Número de cotización"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	id, err := quoteID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, name, err := h.docs.QuotePDF(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, "application/pdf", name, data)
}
