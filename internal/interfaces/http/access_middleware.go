package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
)

// capabilityChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *usecase.AccessService; el uso de interfaz evita el import circular.
type capabilityChecker interface {
	HasCapability(ctx context.Context, userID string, c policy.Capability) (bool, error)
}

// RequireCapability devuelve un middleware Fiber que verifica si el usuario del token
// puede usar la sección. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Con checker nil decide con el rol y los permisos del token.
//
// Comportamiento:
//   - 403 Forbidden → el usuario no tiene la capacidad o ya no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar el usuario.
//   - Si no hay user_id en el contexto, responde 401.
func RequireCapability(capability policy.Capability, checker capabilityChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		var allowed bool
		if checker == nil {
			granted, _ := policy.ParseList(GetPermissions(c))
			allowed = policy.Can(GetRole(c), granted, capability)
		} else {
			ok, err := checker.HasCapability(c.Context(), userID, capability)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code:    "ACCESS_CHECK_FAILED",
					Message: "no se pudo verificar el acceso, intente más tarde",
				})
			}
			allowed = ok
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene acceso a la sección '" + string(capability) + "'",
			})
		}
		return c.Next()
	}
}
