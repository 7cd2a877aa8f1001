package repository

import (
	"context"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// SesionRepository persiste sesiones autenticadas y logins pendientes de 2FA.
// La implementación concreta usa SQLite; los casos de uso solo dependen de
// esta interfaz.
type SesionRepository interface {
	// Sesiones autenticadas
	GuardarSesion(ctx context.Context, s *entity.Sesion) error
	ObtenerSesion(ctx context.Context, id string) (*entity.Sesion, error)
	// RefrescarSesion actualiza CreadaEn para extender la vida de la sesión.
	RefrescarSesion(ctx context.Context, id string, creadaEn time.Time) error
	EliminarSesion(ctx context.Context, id string) error

	// Logins pendientes (estado otp-pending)
	GuardarPendiente(ctx context.Context, p *entity.LoginPendiente) error
	ObtenerPendiente(ctx context.Context, id string) (*entity.LoginPendiente, error)
	ActualizarIntentos(ctx context.Context, id string, restantes int) error
	EliminarPendiente(ctx context.Context, id string) error
}
