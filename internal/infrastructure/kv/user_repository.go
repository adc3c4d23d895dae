package kv

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r userRecord) toEntity() *entity.User {
	caps, _ := policy.ParseList(r.Permissions)
	return &entity.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		Capabilities: caps,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func newUserRecord(u *entity.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Permissions:  policy.Strings(u.Capabilities),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserRepo usuarios guardados como lista JSON bajo la clave "users".
// El nombre de usuario es único sin distinguir mayúsculas.
type UserRepo struct {
	col *collection[userRecord]
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(store Store, locker Locker) *UserRepo {
	return &UserRepo{col: &collection[userRecord]{store: store, locker: locker, key: KeyUsers}}
}

// Create agrega un usuario; ErrDuplicate si el nombre ya existe.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.col.mutate(ctx, func(list []userRecord) ([]userRecord, error) {
		for _, rec := range list {
			if rec.ID == user.ID || strings.EqualFold(rec.Username, user.Username) {
				return nil, domain.ErrDuplicate
			}
		}
		return append(list, newUserRecord(user)), nil
	})
}

// GetByID obtiene un usuario. nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, func(rec userRecord) bool { return rec.ID == id })
}

// GetByUsername obtiene un usuario por nombre. nil, nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(ctx, func(rec userRecord) bool { return strings.EqualFold(rec.Username, username) })
}

func (r *UserRepo) find(ctx context.Context, match func(userRecord) bool) (*entity.User, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if match(rec) {
			return rec.toEntity(), nil
		}
	}
	return nil, nil
}

// List devuelve los usuarios en orden de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	list, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.toEntity())
	}
	return out, nil
}

// Update reemplaza un usuario; ErrDuplicate si el nuevo nombre pertenece a otro.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.col.mutate(ctx, func(list []userRecord) ([]userRecord, error) {
		idx := -1
		for i, rec := range list {
			if rec.ID == user.ID {
				idx = i
				continue
			}
			if strings.EqualFold(rec.Username, user.Username) {
				return nil, domain.ErrDuplicate
			}
		}
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		list[idx] = newUserRecord(user)
		return list, nil
	})
}

// Delete elimina un usuario.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(list []userRecord) ([]userRecord, error) {
		for i, rec := range list {
			if rec.ID == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
