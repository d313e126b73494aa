package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	// ErrConflict: el recurso no puede borrarse porque otros registros lo referencian.
	ErrConflict = errors.New("el recurso está en uso")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	// ErrCountNotOpen: operación contra un conteo que ya no está in_progress (transición terminal).
	ErrCountNotOpen = errors.New("el conteo no está en progreso")
	// ErrOrderNotOpen: transición de orden inválida (ej. recibir una orden ya recibida).
	ErrOrderNotOpen = errors.New("la orden no admite esa transición")
)
