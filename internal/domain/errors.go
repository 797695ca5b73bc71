package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Taxonomía: validación (400), no encontrado (404), conflicto (409), permisos (401/403).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("existencias insuficientes")

	// Reglas propias del ledger de movimientos.
	ErrMissingIdempotencyKey   = errors.New("idempotency key requerida en operaciones de escritura")
	ErrSerialRequired          = errors.New("parte serializada requiere número de serie y cantidad 1")
	ErrSerialNotAllowed        = errors.New("parte no serializada no puede llevar número de serie")
	ErrLotRequired             = errors.New("parte controlada por lote requiere número de lote")
	ErrScrapReasonRequired     = errors.New("scrap requiere código de motivo")
	ErrConditionNotServiceable = errors.New("la condición actual no es SERVICEABLE")
	ErrNothingToInspect        = errors.New("sin existencias en la ubicación para inspeccionar")
)
