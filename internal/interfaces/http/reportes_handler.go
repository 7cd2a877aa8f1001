package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/application/reportes"
)

// ReportesHandler maneja las tablas de implementaciones y certificaciones y
// sus exportaciones.
type ReportesHandler struct {
	uc *reportes.UseCase
}

// NewReportesHandler construye el handler de reportes.
func NewReportesHandler(uc *reportes.UseCase) *ReportesHandler {
	return &ReportesHandler{uc: uc}
}

// Implementaciones godoc
// @Summary      Tabla de implementaciones (filtrada y paginada)
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        empresa   query  string  false  "filtro contiene sobre empresa"
// @Param        rnc       query  string  false  "filtro contiene sobre RNC"
// @Param        tecnico   query  string  false  "filtro contiene sobre técnico"
// @Param        vendedor  query  string  false  "filtro contiene sobre vendedor"
// @Param        estado    query  string  false  "filtro contiene sobre estado"
// @Param        sistema   query  string  false  "filtro contiene sobre sistema"
// @Param        page      query  int     false  "página (desde 1)"
// @Success      200  {object}  dto.ListaImplementaciones
// @Router       /api/v1/reportes/implementaciones [get]
func (h *ReportesHandler) Implementaciones(c *fiber.Ctx) error {
	var filtros dto.FiltrosImplementaciones
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return c.JSON(h.uc.ListarImplementaciones(c.Context(), filtros, c.QueryInt("page", 1)))
}

// Certificaciones godoc
// @Summary      Tabla de certificaciones (principales y subsidiarias)
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        empresa        query  string  false  "filtro contiene sobre empresa"
// @Param        rnc            query  string  false  "filtro contiene sobre RNC"
// @Param        certificacion  query  string  false  "filtro de etapa; admite 'en blanco', 'finalización', 'sin empezar'"
// @Param        tipo           query  string  false  "Principal | Subsidiaria"
// @Param        empresa_padre  query  string  false  "filtro contiene sobre empresa padre"
// @Param        page           query  int     false  "página (desde 1)"
// @Success      200  {object}  dto.ListaCertificaciones
// @Router       /api/v1/reportes/certificaciones [get]
func (h *ReportesHandler) Certificaciones(c *fiber.Ctx) error {
	var filtros dto.FiltrosCertificaciones
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return c.JSON(h.uc.ListarCertificaciones(c.Context(), filtros, c.QueryInt("page", 1)))
}

// ExportarImplementaciones godoc
// @Summary      Exportar implementaciones filtradas (csv, xlsx, html, pdf)
// @Tags         reportes
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        formato  query  string  true  "csv | xlsx | html | pdf"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reportes/implementaciones/export [get]
func (h *ReportesHandler) ExportarImplementaciones(c *fiber.Ctx) error {
	formato := c.Query("formato", "csv")
	if err := reportes.FormatoValido(formato); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: err.Error()})
	}
	var filtros dto.FiltrosImplementaciones
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	contenido, nombre, contentType, err := h.uc.ExportarImplementaciones(c.Context(), filtros, formato)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	return enviarArchivo(c, contenido, nombre, contentType)
}

// ExportarCertificaciones godoc
// @Summary      Exportar certificaciones filtradas (csv, xlsx, html, pdf)
// @Tags         reportes
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        formato  query  string  true  "csv | xlsx | html | pdf"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reportes/certificaciones/export [get]
func (h *ReportesHandler) ExportarCertificaciones(c *fiber.Ctx) error {
	formato := c.Query("formato", "csv")
	if err := reportes.FormatoValido(formato); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: err.Error()})
	}
	var filtros dto.FiltrosCertificaciones
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	contenido, nombre, contentType, err := h.uc.ExportarCertificaciones(c.Context(), filtros, formato)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	return enviarArchivo(c, contenido, nombre, contentType)
}

func enviarArchivo(c *fiber.Ctx, contenido []byte, nombre, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, nombre))
	return c.Send(contenido)
}
