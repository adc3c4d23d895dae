package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrNoData             = errors.New("no hay datos para exportar")
)

// ValidationError describe una regla de negocio incumplida con un mensaje para el usuario.
// errors.Is(err, ErrInvalidInput) sigue funcionando para el mapeo HTTP.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite comparar con ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid crea un error de validación con mensaje legible.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// InsufficientStockError indica qué repuesto no alcanza para cubrir la cantidad pedida.
type InsufficientStockError struct {
	PartID      string
	WarehouseID string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return "stock insuficiente para el repuesto " + e.PartID
}

// Unwrap permite comparar con ErrInsufficientStock.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
