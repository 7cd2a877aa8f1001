// Package tareas cubre la creación de tareas de implementación contra el
// webhook del backend, la consulta de RNC y los tickets locales de soporte.
package tareas

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/internal/domain/repository"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

// Catálogos de confirmaciones y requisitos del formulario de tarea. Las
// claves viajan desde el cliente; al webhook van los textos descriptivos.
var textosConfirmaciones = map[string]string{
	"accesoPortal":        "Acceso al portal de certificación de la DGII",
	"firmaElectronica":    "Firma electronica, archivo p12 y contraseña",
	"noTieneFirma":        "No tiene la firma aun",
	"noTieneAcceso":       "No tiene el acceso al portal de certificación",
	"cambioRepresentante": "Cambio de representante",
}

var textosRequisitos = map[string]string{
	"firmoPropuestas":   "Firmó propuesta",
	"noFirmoPropuestas": "No ha Firmado Propuesta",
	"hizoAvance":        "Hizo el avance",
	"noHizoAvance":      "No ha hecho el avance",
	"firmoCarta":        "Firmó carta de autorización de uso firma",
	"noFirmoCarta":      "No ha firmado carta de autorización de uso de firma",
	"firmoAcuerdo":      "Firmó Acuerdo de Servicio",
	"noFirmoAcuerdo":    "No ha firmado Acuerdo de Servicios",
}

// Publicador es el puerto hacia el webhook de creación de tareas.
type Publicador interface {
	CrearTarea(ctx context.Context, payload any) error
}

// BuscadorRNC es el puerto hacia el servicio de consulta de RNC.
type BuscadorRNC interface {
	Buscar(ctx context.Context, rnc string) (string, error)
}

// UseCase orquesta tareas, consulta de RNC y tickets locales.
type UseCase struct {
	publicador Publicador
	rnc        BuscadorRNC
	tickets    repository.TicketRepository
	log        *logger.Logger
	ahora      func() time.Time // inyectable para tests
}

// NewUseCase construye el caso de uso de tareas.
func NewUseCase(publicador Publicador, rnc BuscadorRNC, tickets repository.TicketRepository, log *logger.Logger) *UseCase {
	return &UseCase{publicador: publicador, rnc: rnc, tickets: tickets, log: log, ahora: time.Now}
}

// CrearTarea valida el formulario, traduce las claves de catálogo a sus
// textos y publica la tarea en el webhook del backend.
func (uc *UseCase) CrearTarea(ctx context.Context, req dto.TareaRequest) error {
	if strings.TrimSpace(req.FormData.NombreCliente) == "" {
		return fmt.Errorf("nombreCliente requerido: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.FormData.RNC) == "" {
		return fmt.Errorf("rnc requerido: %w", domain.ErrInvalidInput)
	}

	confirmaciones, err := traducir(req.Confirmaciones, textosConfirmaciones, "confirmación")
	if err != nil {
		return err
	}
	requisitos, err := traducir(req.Requisitos, textosRequisitos, "requisito")
	if err != nil {
		return err
	}

	nrcs := req.NRCs
	if nrcs == nil {
		nrcs = []dto.TareaNRC{}
	}
	payload := map[string]any{
		"formData":       req.FormData,
		"confirmaciones": map[string][]string{"true": confirmaciones},
		"requisitos":     map[string][]string{"true": requisitos},
		"nrcs":           nrcs,
	}
	if err := uc.publicador.CrearTarea(ctx, payload); err != nil {
		return err
	}

	uc.log.Info().Str("cliente", req.FormData.NombreCliente).Msg("tarea publicada")
	return nil
}

// traducir lleva las claves de catálogo a sus textos, rechazando las
// desconocidas. El orden de entrada se respeta.
func traducir(claves []string, catalogo map[string]string, etiqueta string) ([]string, error) {
	textos := make([]string, 0, len(claves))
	for _, clave := range claves {
		texto, ok := catalogo[clave]
		if !ok {
			return nil, fmt.Errorf("%s desconocida %q: %w", etiqueta, clave, domain.ErrInvalidInput)
		}
		textos = append(textos, texto)
	}
	return textos, nil
}

// BuscarRNC resuelve la razón social de un RNC.
func (uc *UseCase) BuscarRNC(ctx context.Context, rnc string) (*dto.RNCResponse, error) {
	razon, err := uc.rnc.Buscar(ctx, rnc)
	if err != nil {
		return nil, err
	}
	return &dto.RNCResponse{RNC: strings.TrimSpace(rnc), RazonSocial: razon}, nil
}

// CrearTicket registra un ticket local.
func (uc *UseCase) CrearTicket(ctx context.Context, req dto.TicketRequest) (*dto.TicketItem, error) {
	if strings.TrimSpace(req.Titulo) == "" {
		return nil, fmt.Errorf("título requerido: %w", domain.ErrInvalidInput)
	}
	prioridad := req.Prioridad
	if prioridad == "" {
		prioridad = "Media"
	}

	ticket := &entity.Ticket{
		ID:          uuid.NewString(),
		Titulo:      strings.TrimSpace(req.Titulo),
		Descripcion: strings.TrimSpace(req.Descripcion),
		Prioridad:   prioridad,
		Estado:      entity.TicketAbierto,
		CreadoEn:    uc.ahora(),
	}
	if err := uc.tickets.Crear(ctx, ticket); err != nil {
		return nil, err
	}
	item := ticketItem(ticket)
	return &item, nil
}

// ListarTickets devuelve los tickets locales, los más recientes primero.
func (uc *UseCase) ListarTickets(ctx context.Context) ([]dto.TicketItem, error) {
	tickets, err := uc.tickets.Listar(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketItem, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ticketItem(t))
	}
	return items, nil
}

// CambiarEstadoTicket abre o cierra un ticket.
func (uc *UseCase) CambiarEstadoTicket(ctx context.Context, id, estado string) error {
	if estado != entity.TicketAbierto && estado != entity.TicketCerrado {
		return fmt.Errorf("estado %q: %w", estado, domain.ErrInvalidInput)
	}
	return uc.tickets.ActualizarEstado(ctx, id, estado)
}

// EliminarTicket borra un ticket local.
func (uc *UseCase) EliminarTicket(ctx context.Context, id string) error {
	return uc.tickets.Eliminar(ctx, id)
}

func ticketItem(t *entity.Ticket) dto.TicketItem {
	return dto.TicketItem{
		ID:          t.ID,
		Titulo:      t.Titulo,
		Descripcion: t.Descripcion,
		Prioridad:   t.Prioridad,
		Estado:      t.Estado,
		CreadoEn:    t.CreadoEn.Format(time.RFC3339),
	}
}
