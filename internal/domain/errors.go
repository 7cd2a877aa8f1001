package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrSessionExpired      = errors.New("sesión expirada")
	ErrGatewayUnavailable  = errors.New("backend de datos no disponible")
	ErrGatewayRejected     = errors.New("el backend rechazó la operación")
	ErrOTPIncorrect        = errors.New("código de verificación incorrecto")
	ErrOTPExpired          = errors.New("código de verificación expirado")
	ErrOTPAttemptsExceeded = errors.New("intentos de verificación agotados")
	ErrRNCNotFound         = errors.New("RNC sin resultados")
	ErrRNCInvalid          = errors.New("formato de RNC inválido")
	ErrRolRequerido        = errors.New("se requiere al menos un rol")
)
