package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/application/tareas"
	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// TareasHandler maneja la creación de tareas, la consulta de RNC y los
// tickets locales.
type TareasHandler struct {
	uc *tareas.UseCase
}

// NewTareasHandler construye el handler de tareas.
func NewTareasHandler(uc *tareas.UseCase) *TareasHandler {
	return &TareasHandler{uc: uc}
}

// CrearTarea godoc
// @Summary      Crear tarea de implementación en el backend
// @Tags         tareas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TareaRequest  true  "formData, confirmaciones, requisitos, nrcs"
// @Success      202
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/tareas [post]
func (h *TareasHandler) CrearTarea(c *fiber.Ctx) error {
	var in dto.TareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CrearTarea(c.Context(), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrGatewayRejected), errors.Is(err, domain.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el backend no aceptó la tarea"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// BuscarRNC godoc
// @Summary      Resolver la razón social de un RNC
// @Tags         tareas
// @Produce      json
// @Security     BearerAuth
// @Param        rnc  path  string  true  "RNC de 9 a 11 dígitos"
// @Success      200  {object}  dto.RNCResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tareas/rnc/{rnc} [get]
func (h *TareasHandler) BuscarRNC(c *fiber.Ctx) error {
	out, err := h.uc.BuscarRNC(c.Context(), c.Params("rnc"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRNCInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "RNC_INVALID", Message: "el RNC debe tener entre 9 y 11 dígitos"})
		case errors.Is(err, domain.ErrRNCNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RNC_NOT_FOUND", Message: "el RNC no tiene resultados"})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "el servicio de RNC no responde"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CrearTicket godoc
// @Summary      Crear ticket local
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TicketRequest  true  "titulo, descripcion, prioridad"
// @Success      201   {object}  dto.TicketItem
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/tickets [post]
func (h *TareasHandler) CrearTicket(c *fiber.Ctx) error {
	var in dto.TicketRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearTicket(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarTickets godoc
// @Summary      Listar tickets locales
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TicketItem
// @Router       /api/v1/tickets [get]
func (h *TareasHandler) ListarTickets(c *fiber.Ctx) error {
	out, err := h.uc.ListarTickets(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CambiarEstadoTicket godoc
// @Summary      Abrir o cerrar un ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id del ticket"
// @Param        body  body  object  true  "{estado: Abierto | Cerrado}"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tickets/{id}/estado [put]
func (h *TareasHandler) CambiarEstadoTicket(c *fiber.Ctx) error {
	var in struct {
		Estado string `json:"estado"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CambiarEstadoTicket(c.Context(), c.Params("id"), in.Estado); err != nil {
		return responderErrorTicket(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EliminarTicket godoc
// @Summary      Eliminar un ticket local
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del ticket"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tickets/{id} [delete]
func (h *TareasHandler) EliminarTicket(c *fiber.Ctx) error {
	if err := h.uc.EliminarTicket(c.Context(), c.Params("id")); err != nil {
		return responderErrorTicket(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func responderErrorTicket(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TICKET_NOT_FOUND", Message: "no existe un ticket con ese id"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
