package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/auth"
	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// AuthHandler maneja el flujo de autenticación en dos pasos.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión (paso 1: credenciales)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, captcha"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el backend de autenticación no responde"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Verificar godoc
// @Summary      Verificar código 2FA (paso 2)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerificarRequest  true  "pendiente_id, codigo"
// @Success      200   {object}  dto.VerificarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/verificar [post]
func (h *AuthHandler) Verificar(c *fiber.Ctx) error {
	var in dto.VerificarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Verificar(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PENDIENTE_NOT_FOUND", Message: "no hay un login pendiente con ese id"})
		case errors.Is(err, domain.ErrOTPExpired):
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "OTP_EXPIRED", Message: "el código venció, solicite uno nuevo"})
		case errors.Is(err, domain.ErrOTPAttemptsExceeded):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "OTP_MAX_ATTEMPTS", Message: "intentos agotados, solicite un código nuevo"})
		case errors.Is(err, domain.ErrOTPIncorrect):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "OTP_INCORRECT", Message: err.Error()})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el backend de autenticación no responde"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reenviar godoc
// @Summary      Reenviar código 2FA
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReenviarRequest  true  "pendiente_id"
// @Success      200   {object}  dto.LoginResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/reenviar [post]
func (h *AuthHandler) Reenviar(c *fiber.Ctx) error {
	var in dto.ReenviarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reenviar(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PENDIENTE_NOT_FOUND", Message: "no hay un login pendiente con ese id"})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el backend de autenticación no responde"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetSessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
