package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/pkg/jwt"
	"github.com/jhoicas/repuestos-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y usuario administrador inicial.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", user.Username).Msg("contraseña incorrecta")
		return nil, domain.ErrInvalidCredentials
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: policy.Strings(user.Capabilities),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *dto.FromUser(user),
	}, nil
}

// SeedAdmin crea el administrador inicial si todavía no hay usuarios. Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         policy.RoleAdmin,
		Capabilities: policy.DefaultFor(policy.RoleAdmin),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	uc.log.Info().Str("username", username).Msg("usuario administrador inicial creado")
	return true, nil
}
