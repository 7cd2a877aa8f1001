package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/pkg/jwt"
)

// Locals keys para la sesión autenticada en Fiber.
const (
	LocalSessionID = "session_id"
	LocalMiembroID = "miembro_id"
	LocalEmail     = "email"
)

// ValidadorSesion resuelve la sesión persistida que referencia el JWT. Aquí
// ocurre el refresco silencioso y la limpieza de sesiones vencidas.
type ValidadorSesion interface {
	ValidarSesion(ctx context.Context, sessionID string) (*entity.Sesion, error)
}

// SessionMiddleware valida el Bearer Token JWT, resuelve la sesión contra el
// store y deja SessionID, MiembroID y Email en c.Locals.
func SessionMiddleware(jwtSecret string, sesiones ValidadorSesion) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		sessionID, miembroID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		if _, err := sesiones.ValidarSesion(c.Context(), sessionID); err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró, inicie sesión de nuevo"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}

		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalMiembroID, miembroID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// GetSessionID devuelve el SessionID del contexto (después del middleware).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetMiembroID devuelve el MiembroID del contexto (después del middleware).
func GetMiembroID(c *fiber.Ctx) string {
	v := c.Locals(LocalMiembroID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto (después del middleware).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
