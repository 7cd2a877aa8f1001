package repository

import (
	"context"

	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// TicketRepository persiste los tickets locales.
type TicketRepository interface {
	Crear(ctx context.Context, t *entity.Ticket) error
	Listar(ctx context.Context) ([]*entity.Ticket, error)
	ObtenerPorID(ctx context.Context, id string) (*entity.Ticket, error)
	ActualizarEstado(ctx context.Context, id, estado string) error
	Eliminar(ctx context.Context, id string) error
}
