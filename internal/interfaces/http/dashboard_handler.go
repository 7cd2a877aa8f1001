package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/analytics"
	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// DashboardHandler maneja los datasets del tablero y el drill-down.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Datasets del tablero en una sola respuesta
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        periodo  query  string  false  "ventana de las series monetarias: 3meses | 6meses | año"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.uc.Generar(c.Context(), c.Query("periodo")))
}

// Detalle godoc
// @Summary      Filas que aportaron a un elemento de gráfico
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        dimension  query  string  true  "mes | tecnico | vendedor | estado | certificacion"
// @Param        clave      query  string  true  "clave del elemento (p. ej. 2025-08 o el nombre de la categoría)"
// @Success      200  {object}  dto.DetalleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/dashboard/detalle [get]
func (h *DashboardHandler) Detalle(c *fiber.Ctx) error {
	req := dto.DetalleRequest{
		Dimension: c.Query("dimension"),
		Clave:     c.Query("clave"),
	}
	out, err := h.uc.Detalle(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
