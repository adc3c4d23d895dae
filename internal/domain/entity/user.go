package entity

import (
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain/policy"
)

// User representa un usuario del sistema con su rol y capacidades.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Role         string // admin, user
	Capabilities []policy.Capability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Can indica si el usuario tiene la capacidad pedida (admin implica todas).
func (u *User) Can(c policy.Capability) bool {
	if u == nil {
		return false
	}
	return policy.Can(u.Role, u.Capabilities, c)
}
