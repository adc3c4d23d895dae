package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/usecase"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// SellerHandler maneja las peticiones HTTP de vendedores (protegido).
type SellerHandler struct {
	uc  *usecase.SellerUseCase
	log *logger.Logger
}

// NewSellerHandler construye el handler.
func NewSellerHandler(uc *usecase.SellerUseCase, log *logger.Logger) *SellerHandler {
	return &SellerHandler{uc: uc, log: log}
}

// Create POST /api/sellers
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.SellerRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sellers
func (h *SellerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/sellers/:id
func (h *SellerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update PUT /api/sellers/:id
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	var in dto.SellerRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/sellers/:id
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
