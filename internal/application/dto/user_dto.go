package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Si Permissions viene vacío se usan las capacidades por defecto del rol.
type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=50"`
	Password    string   `json:"password" validate:"required,min=4,max=72"`
	Role        string   `json:"role" validate:"required,oneof=admin user"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest entrada para editar un usuario. Password vacío conserva el actual.
type UpdateUserRequest struct {
	Username    *string  `json:"username" validate:"omitempty,min=3,max=50"`
	Password    *string  `json:"password" validate:"omitempty,min=4,max=72"`
	Role        *string  `json:"role" validate:"omitempty,oneof=admin user"`
	Permissions []string `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
