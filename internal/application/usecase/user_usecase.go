package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create registra un usuario con la contraseña hasheada. Sin permisos explícitos se usan los del rol.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !policy.ValidRole(in.Role) {
		return nil, domain.Invalid("Rol no válido.")
	}
	caps, err := capabilitiesFor(in.Role, in.Permissions)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         in.Role,
		Capabilities: caps,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.FromUser(user), nil
}

// List lista los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.FromUser(u))
	}
	return items, nil
}

// Update edita nombre, contraseña, rol o permisos. Si cambia el rol sin permisos explícitos
// se aplican los del nuevo rol.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	roleChanged := false
	if in.Role != nil && *in.Role != user.Role {
		if !policy.ValidRole(*in.Role) {
			return nil, domain.Invalid("Rol no válido.")
		}
		if user.Role == policy.RoleAdmin {
			if err := uc.ensureAnotherAdmin(ctx, user.ID); err != nil {
				return nil, err
			}
		}
		user.Role = *in.Role
		roleChanged = true
	}
	if in.Permissions != nil || roleChanged {
		caps, err := capabilitiesFor(user.Role, in.Permissions)
		if err != nil {
			return nil, err
		}
		user.Capabilities = caps
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// Delete elimina un usuario. No se puede eliminar el propio usuario ni el último administrador.
func (uc *UserUseCase) Delete(ctx context.Context, id, currentUserID string) error {
	if id == currentUserID {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrConflict)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == policy.RoleAdmin {
		if err := uc.ensureAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) ensureAnotherAdmin(ctx context.Context, exceptID string) error {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		if u.ID != exceptID && u.Role == policy.RoleAdmin {
			return nil
		}
	}
	return domain.ErrConflict
}

// capabilitiesFor valida los permisos recibidos; lista vacía usa los del rol.
func capabilitiesFor(role string, permissions []string) ([]policy.Capability, error) {
	if role == policy.RoleAdmin || len(permissions) == 0 {
		return policy.DefaultFor(role), nil
	}
	caps, ok := policy.ParseList(permissions)
	if !ok {
		return nil, domain.Invalid("Permiso desconocido.")
	}
	return caps, nil
}
