package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/application/personal"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
)

// PersonalHandler maneja el directorio de personal y sus selectores.
type PersonalHandler struct {
	uc *personal.UseCase
}

// NewPersonalHandler construye el handler de personal.
func NewPersonalHandler(uc *personal.UseCase) *PersonalHandler {
	return &PersonalHandler{uc: uc}
}

// tablasOpciones mapea el rol pedido en la URL a su tabla del backend.
var tablasOpciones = map[string]string{
	"tecnicos":       gateway.TablaTecnicos,
	"vendedores":     gateway.TablaVendedores,
	"distribuidores": gateway.TablaDistribuidores,
}

// Listar godoc
// @Summary      Listado de personal (remotos + borradores locales)
// @Tags         personal
// @Produce      json
// @Security     BearerAuth
// @Param        busqueda   query  string  false  "sobre nombre, email y teléfono"
// @Param        tipo       query  string  false  "Tecnico | Vendedor | Gerencia | Distribuidor"
// @Param        prioridad  query  string  false  "Alta | Media | Baja"
// @Param        estado     query  string  false  "Activo | Inactivo"
// @Param        page       query  int     false  "página (desde 1)"
// @Success      200  {object}  dto.ListaPersonal
// @Router       /api/v1/personal [get]
func (h *PersonalHandler) Listar(c *fiber.Ctx) error {
	var filtros dto.FiltrosPersonal
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Listar(c.Context(), filtros, c.QueryInt("page", 1))
	if err != nil {
		return responderErrorPersonal(c, err)
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Alta de personal
// @Tags         personal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.MiembroRequest  true  "nombre, email, celular, prioridad, tipos"
// @Success      201   {object}  dto.MiembroItem
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/personal [post]
func (h *PersonalHandler) Crear(c *fiber.Ctx) error {
	var in dto.MiembroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Guardar(c.Context(), "", in)
	if err != nil {
		return responderErrorPersonal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar godoc
// @Summary      Edición de personal
// @Tags         personal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "miembroID"
// @Param        body  body  dto.MiembroRequest  true  "nombre, email, celular, prioridad, tipos"
// @Success      200   {object}  dto.MiembroItem
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/personal/{id} [put]
func (h *PersonalHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.MiembroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Guardar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderErrorPersonal(c, err)
	}
	return c.JSON(out)
}

// Sincronizar godoc
// @Summary      Reintentar el alta remota de los borradores locales
// @Tags         personal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SincronizarResponse
// @Router       /api/v1/personal/sincronizar [post]
func (h *PersonalHandler) Sincronizar(c *fiber.Ctx) error {
	out, err := h.uc.Sincronizar(c.Context())
	if err != nil {
		return responderErrorPersonal(c, err)
	}
	return c.JSON(out)
}

// Opciones godoc
// @Summary      Opciones de selector por rol
// @Tags         personal
// @Produce      json
// @Security     BearerAuth
// @Param        rol  path  string  true  "tecnicos | vendedores | distribuidores"
// @Success      200  {array}  dto.MiembroOpcion
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/personal/opciones/{rol} [get]
func (h *PersonalHandler) Opciones(c *fiber.Ctx) error {
	tabla, ok := tablasOpciones[c.Params("rol")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROL", Message: "rol desconocido"})
	}
	out, err := h.uc.Opciones(c.Context(), tabla)
	if err != nil {
		return responderErrorPersonal(c, err)
	}
	return c.JSON(out)
}

func responderErrorPersonal(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRolRequerido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ROL_REQUERIDO", Message: "se requiere al menos un rol del catálogo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el backend de datos no responde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
