package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

// AccessService verifica qué secciones puede usar un usuario.
// Lee el usuario en cada consulta, así un cambio de permisos aplica sin esperar a que venza el token.
type AccessService struct {
	users repository.UserRepository
}

// NewAccessService construye el servicio de acceso.
func NewAccessService(users repository.UserRepository) *AccessService {
	return &AccessService{users: users}
}

// HasCapability informa si el usuario tiene la capacidad pedida.
// Devuelve false (sin error) si el usuario ya no existe.
// Devuelve error solo ante fallos de infraestructura.
func (s *AccessService) HasCapability(ctx context.Context, userID string, c policy.Capability) (bool, error) {
	if userID == "" || c == "" {
		return false, fmt.Errorf("access: userID y capacidad son obligatorios")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("access: %w", err)
	}
	if u == nil {
		return false, nil
	}
	return policy.Can(u.Role, u.Capabilities, c), nil
}
